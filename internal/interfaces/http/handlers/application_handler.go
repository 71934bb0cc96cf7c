package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/interfaces/http/middleware"
	"trackify.backend/internal/interfaces/http/response"
	"trackify.backend/pkg/utils"
)

type applicationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Application, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.Application, error)
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateApplicationInput) (*entities.Application, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateApplicationInput) (*entities.Application, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ApplicationHandler handles the caller's internship applications
type ApplicationHandler struct {
	applicationUsecase applicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationUsecase applicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationUsecase: applicationUsecase}
}

// ListApplications lists the caller's applications, newest first
// GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	apps, err := h.applicationUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, apps)
}

// GetApplication gets one of the caller's applications
// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, notFoundAs(err, "Application not found"))
		return
	}

	response.Success(c, http.StatusOK, app)
}

// CreateApplication creates an application owned by the caller
// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input entities.CreateApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(bindingMessage(err)))
		return
	}

	app, err := h.applicationUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// UpdateApplication applies a partial update
// PUT /applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(bindingMessage(err)))
		return
	}

	app, err := h.applicationUsecase.Update(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, notFoundAs(err, "Application not found"))
		return
	}

	response.Success(c, http.StatusOK, app)
}

// DeleteApplication deletes one of the caller's applications
// DELETE /applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.applicationUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, notFoundAs(err, "Application not found"))
		return
	}

	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// notFoundAs gives a not-found error a resource-specific message
func notFoundAs(err error, message string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(message)
	}
	return err
}
