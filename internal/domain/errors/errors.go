package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrCodeExpired          = errors.New("verification code has expired")
	ErrCodeAlreadyUsed      = errors.New("verification code has already been used")
	ErrCodeNotVerified      = errors.New("verification code has not been verified")
	ErrSamePassword         = errors.New("new password matches the current password")
	ErrEmailConfigMissing   = errors.New("email provider configuration missing")
	ErrEmailTemplateMissing = errors.New("email template missing")
	ErrEmailDeliveryFailed  = errors.New("email delivery failed")
)

// Error codes returned to clients
const (
	CodeInvalidInput      = "ERR_BAD_REQUEST"
	CodeUnauthorized      = "ERR_UNAUTHORIZED"
	CodeForbidden         = "ERR_FORBIDDEN"
	CodeNotFound          = "ERR_NOT_FOUND"
	CodeConflict          = "ERR_CONFLICT"
	CodeCodeExpired       = "ERR_CODE_EXPIRED"
	CodeCodeAlreadyUsed   = "ERR_CODE_ALREADY_USED"
	CodeCodeNotVerified   = "ERR_CODE_NOT_VERIFIED"
	CodeSamePassword      = "ERR_SAME_PASSWORD"
	CodeEmailConfig       = "ERR_EMAIL_CONFIG"
	CodeEmailDelivery     = "ERR_EMAIL_DELIVERY"
	CodeInternalError     = "ERR_INTERNAL_ERROR"
	CodeAccountInactive   = "ERR_ACCOUNT_INACTIVE"
	CodeInvalidCredential = "ERR_INVALID_CREDENTIALS"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain translates a domain error into the AppError sent to clients.
// Errors outside the taxonomy become a 500 that keeps the cause for logging only.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, "invalid input", err)
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredential, "Invalid credentials.", err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "Not authenticated", err)
	case errors.Is(err, ErrAccountInactive):
		return NewAppError(http.StatusForbidden, CodeAccountInactive, "Account is inactive.", err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, "forbidden", err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "resource not found", err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, "resource already exists", err)
	case errors.Is(err, ErrCodeExpired):
		return NewAppError(http.StatusBadRequest, CodeCodeExpired, "Code has expired.", err)
	case errors.Is(err, ErrCodeAlreadyUsed):
		return NewAppError(http.StatusBadRequest, CodeCodeAlreadyUsed, "Code has already been used.", err)
	case errors.Is(err, ErrCodeNotVerified):
		return NewAppError(http.StatusBadRequest, CodeCodeNotVerified, "Code has not been verified.", err)
	case errors.Is(err, ErrSamePassword):
		return NewAppError(http.StatusBadRequest, CodeSamePassword, "New password cannot be the same as the old password.", err)
	case errors.Is(err, ErrEmailConfigMissing), errors.Is(err, ErrEmailTemplateMissing):
		return NewAppError(http.StatusInternalServerError, CodeEmailConfig, "Email configuration missing.", err)
	case errors.Is(err, ErrEmailDeliveryFailed):
		return NewAppError(http.StatusInternalServerError, CodeEmailDelivery, "Email cannot be sent. Please try again.", err)
	default:
		return InternalError(err)
	}
}
