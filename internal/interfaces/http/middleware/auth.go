package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/interfaces/http/response"
	"trackify.backend/pkg/jwt"
	"trackify.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TokenParam names the query parameter and cookie carrying the session token
	TokenParam = "token"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
)

// TokenValidator verifies a session token
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid session token from the Authorization header,
// the token query parameter, or the token cookie, in that order.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, domainerrors.Unauthorized("Not authenticated"))
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			logger.Debug(c.Request.Context(), "Rejected session token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, domainerrors.Unauthorized("Invalid or expired token"))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Error(c, domainerrors.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, claims.Email)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, userID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader(AuthorizationHeader); strings.HasPrefix(header, BearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)); token != "" {
			return token
		}
	}
	if token := c.Query(TokenParam); token != "" {
		return token
	}
	if token, err := c.Cookie(TokenParam); err == nil && token != "" {
		return token
	}
	return ""
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
