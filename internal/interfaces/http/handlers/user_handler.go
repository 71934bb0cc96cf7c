package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/interfaces/http/response"
)

type userService interface {
	List(ctx context.Context) ([]*entities.User, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.User, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type userCreator interface {
	CreateUser(ctx context.Context, input *entities.SignupInput) (*entities.User, error)
}

// UserHandler handles user records
type UserHandler struct {
	userUsecase userService
	creator     userCreator
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase userService, creator userCreator) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, creator: creator}
}

// CreateUser registers a user without starting a session
// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input entities.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("All required fields must be provided."))
		return
	}

	user, err := h.creator.CreateUser(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("User with this email already exists."))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user.Public())
}

// ListUsers lists active users
// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]entities.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	response.Success(c, http.StatusOK, out)
}

// GetUser gets a user by id
// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, notFoundAs(err, "User not found"))
		return
	}

	response.Success(c, http.StatusOK, user.Public())
}

// UpdateUser updates the caller's own profile
// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(bindingMessage(err)))
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), actorID, id, &input)
	if err != nil {
		response.Error(c, notFoundAs(err, "User not found"))
		return
	}

	response.Success(c, http.StatusOK, user.Public())
}

// DeleteUser soft-deletes the caller's own account
// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.userUsecase.Delete(c.Request.Context(), actorID, id); err != nil {
		response.Error(c, notFoundAs(err, "User not found"))
		return
	}

	c.Status(http.StatusNoContent)
}
