package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/interfaces/http/middleware"
	"trackify.backend/internal/interfaces/http/response"
	"trackify.backend/pkg/metrics"
)

const sessionCookieMaxAge = 3600

type authService interface {
	Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResult, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*entities.PasswordResetTicket, error)
	VerifyCode(ctx context.Context, input *entities.VerifyCodeInput) error
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  authService
	metrics      *metrics.Metrics
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session cookie Secure.
func NewAuthHandler(authUsecase authService, m *metrics.Metrics, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		metrics:      m,
		secureCookie: secureCookie,
	}
}

// Signup handles user registration
// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input entities.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("All required fields must be provided."))
		return
	}

	result, err := h.authUsecase.Signup(c.Request.Context(), &input)
	h.metrics.AuthEvent("signup", err)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("All required fields must be provided."))
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			response.Error(c, domainerrors.Conflict("User with this email already exists."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "User registered successfully.",
		"token":     result.Token,
		"expiresIn": int(time.Until(result.ExpiresAt).Round(time.Second).Seconds()),
		"user":      result.User.Public(),
	})
}

// Login handles user login and sets the session cookie
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and password are required."))
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), &input)
	h.metrics.AuthEvent("login", err)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidInput) {
			response.Error(c, domainerrors.BadRequest("Email and password are required."))
			return
		}
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, sessionCookieMaxAge)

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// Logout clears the session cookie. Issued tokens stay valid until they expire.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenParam, token, maxAge, "/", "", h.secureCookie, true)
}

// ForgotPassword emails a verification code
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email is required."))
		return
	}

	ticket, err := h.authUsecase.RequestPasswordReset(c.Request.Context(), input.Email)
	h.metrics.AuthEvent("forgot_password", err)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Email is required."))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("No user found with this email."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":       "Verification code has been sent via email",
		"expiring_date": ticket.ExpiresAt,
		"token":         ticket.Token,
	})
}

// Verify consumes an emailed verification code
// POST /auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var input struct {
		Code  json.RawMessage `json:"code"`
		Token json.RawMessage `json:"token"`
		Email string          `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Code (number) and token (string) are required."))
		return
	}

	code, codeOK := parseVerificationCode(input.Code)
	var token string
	tokenOK := json.Unmarshal(input.Token, &token) == nil && token != ""
	if !codeOK || !tokenOK {
		response.Error(c, domainerrors.BadRequest("Code (number) and token (string) are required."))
		return
	}

	err := h.authUsecase.VerifyCode(c.Request.Context(), &entities.VerifyCodeInput{
		Email: input.Email,
		Code:  code,
		Token: token,
	})
	h.metrics.AuthEvent("verify", err)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Invalid or wrong code."))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// parseVerificationCode accepts a JSON integer or a string of digits
func parseVerificationCode(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ResetPassword sets a new password after a successful verification
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email, token and new password are required."))
		return
	}

	err := h.authUsecase.ResetPassword(c.Request.Context(), &entities.ResetPasswordInput{
		Email:       input.Email,
		Token:       input.Token,
		NewPassword: input.NewPassword,
	})
	h.metrics.AuthEvent("reset_password", err)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Email, token and new password are required."))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password has been reset successfully.",
		"email":   input.Email,
	})
}

// GetMe returns the session's user
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Public()})
}
