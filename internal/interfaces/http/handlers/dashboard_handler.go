package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackify.backend/internal/dashboard"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/interfaces/http/response"
	"trackify.backend/internal/usecases"
)

type dashboardService interface {
	View(ctx context.Context, userID uuid.UUID, params dashboard.ViewParams) (*usecases.DashboardPage, error)
	Analytics(ctx context.Context, userID uuid.UUID, loc *time.Location) (*dashboard.Summary, error)
}

// DashboardHandler serves the derived dashboard views
type DashboardHandler struct {
	dashboardUsecase dashboardService
}

func NewDashboardHandler(dashboardUsecase dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// View returns one filtered, sorted page of the caller's applications
// GET /applications/view
func (h *DashboardHandler) View(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	params, err := parseViewParams(c)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	page, err := h.dashboardUsecase.View(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// Analytics returns the chart aggregates
// GET /applications/analytics
func (h *DashboardHandler) Analytics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	loc, err := time.LoadLocation(c.DefaultQuery("tz", "UTC"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid tz"))
		return
	}

	summary, err := h.dashboardUsecase.Analytics(c.Request.Context(), userID, loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func parseViewParams(c *gin.Context) (dashboard.ViewParams, error) {
	params := dashboard.ViewParams{
		Mode:      dashboard.ViewMode(c.DefaultQuery("view", string(dashboard.ViewGrid))),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		SortField: dashboard.SortField(c.Query("sort")),
	}

	switch strings.ToLower(c.DefaultQuery("order", "asc")) {
	case "asc":
		params.Ascending = true
	case "desc":
	default:
		return params, errInvalidQuery("order")
	}

	var err error
	if params.Page, err = intQuery(c, "page", 1); err != nil {
		return params, err
	}
	if params.PageSize, err = intQuery(c, "pageSize", 0); err != nil {
		return params, err
	}

	if params.Location, err = time.LoadLocation(c.DefaultQuery("tz", "UTC")); err != nil {
		return params, errInvalidQuery("tz")
	}
	return params, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errInvalidQuery(name)
	}
	return n, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string { return "Invalid " + string(e) }
