package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"trackify.backend/internal/interfaces/http/handlers"
)

func TestRegisterRoutes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	limited := map[string]bool{}
	registerRoutes(r, routeDeps{
		authHandler:        &handlers.AuthHandler{},
		applicationHandler: &handlers.ApplicationHandler{},
		userHandler:        &handlers.UserHandler{},
		dashboardHandler:   &handlers.DashboardHandler{},
		authMiddleware:     func(c *gin.Context) { c.Next() },
		authRateLimit: func(bucket string) gin.HandlerFunc {
			limited[bucket] = true
			return func(c *gin.Context) { c.Next() }
		},
	})

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/auth/signup"},
		{"POST", "/auth/login"},
		{"POST", "/auth/forgot-password"},
		{"POST", "/auth/verify"},
		{"POST", "/auth/reset-password"},
		{"GET", "/auth/me"},
		{"GET", "/applications"},
		{"POST", "/applications"},
		{"GET", "/applications/view"},
		{"GET", "/applications/analytics"},
		{"GET", "/applications/:id"},
		{"PUT", "/applications/:id"},
		{"DELETE", "/applications/:id"},
		{"POST", "/users"},
		{"GET", "/users/:id"},
		{"DELETE", "/users/:id"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}

	for _, bucket := range []string{"login", "forgot-password", "verify", "reset-password"} {
		if !limited[bucket] {
			t.Fatalf("expected rate limit on %s", bucket)
		}
	}
}

func TestRegisterRoutes_ProtectedRoutesUseAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r, routeDeps{
		authHandler:        &handlers.AuthHandler{},
		applicationHandler: &handlers.ApplicationHandler{},
		userHandler:        &handlers.UserHandler{},
		dashboardHandler:   &handlers.DashboardHandler{},
		authMiddleware: func(c *gin.Context) {
			c.AbortWithStatus(http.StatusUnauthorized)
		},
	})

	for _, path := range []string{"/applications", "/applications/view", "/users", "/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestApplyCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r, "http://localhost:3000")
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin: %s", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}

	// foreign origin
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for foreign origin: %s", got)
	}

	// options preflight
	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRegisterHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" || body["service"] != serviceName || body["version"] != serviceVersion {
		t.Fatalf("unexpected health payload: %+v", body)
	}
}

func TestRegisterMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "trackify_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	r := gin.New()
	registerMetricsRoute(r, reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "trackify_test_total 1") {
		t.Fatalf("metric missing from exposition: %s", rec.Body.String())
	}
}
