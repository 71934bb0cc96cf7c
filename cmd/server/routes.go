package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"trackify.backend/internal/interfaces/http/handlers"
	"trackify.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "trackify-backend"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	applicationHandler *handlers.ApplicationHandler
	userHandler        *handlers.UserHandler
	dashboardHandler   *handlers.DashboardHandler
	authMiddleware     gin.HandlerFunc
	authRateLimit      func(bucket string) gin.HandlerFunc
}

// newEngine builds the router. Only the listed proxies may set the client IP
// through forwarding headers.
func newEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	return r, nil
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	limit := d.authRateLimit
	if limit == nil {
		limit = func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } }
	}

	// Auth routes (public unless noted)
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.authHandler.Signup)
		auth.POST("/login", limit("login"), d.authHandler.Login)
		auth.POST("/logout", d.authHandler.Logout)
		auth.POST("/forgot-password", limit("forgot-password"), d.authHandler.ForgotPassword)
		auth.POST("/verify", limit("verify"), d.authHandler.Verify)
		auth.POST("/reset-password", limit("reset-password"), d.authHandler.ResetPassword)
		auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
	}

	// Application routes (protected, owner scoped)
	applications := r.Group("/applications")
	applications.Use(d.authMiddleware)
	{
		applications.GET("", d.applicationHandler.ListApplications)
		applications.POST("", middleware.IdempotencyMiddleware(), d.applicationHandler.CreateApplication)
		applications.GET("/view", d.dashboardHandler.View)
		applications.GET("/analytics", d.dashboardHandler.Analytics)
		applications.GET("/:id", d.applicationHandler.GetApplication)
		applications.PUT("/:id", d.applicationHandler.UpdateApplication)
		applications.DELETE("/:id", d.applicationHandler.DeleteApplication)
	}

	// User routes, creation is public
	users := r.Group("/users")
	{
		users.POST("", d.userHandler.CreateUser)
		users.GET("", d.authMiddleware, d.userHandler.ListUsers)
		users.GET("/:id", d.authMiddleware, d.userHandler.GetUser)
		users.PUT("/:id", d.authMiddleware, d.userHandler.UpdateUser)
		users.DELETE("/:id", d.authMiddleware, d.userHandler.DeleteUser)
	}
}

// applyCORSMiddleware allows the configured frontend origin to send the session cookie
func applyCORSMiddleware(r *gin.Engine, allowedOrigin string) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
