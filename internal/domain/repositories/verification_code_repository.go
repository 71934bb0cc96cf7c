package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"trackify.backend/internal/domain/entities"
)

// VerificationCodeRepository defines verification code operations
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entities.VerificationCode) error
	FindByCode(ctx context.Context, code int, token string, action entities.VerificationAction) (*entities.VerificationCode, error)
	FindByToken(ctx context.Context, token string, action entities.VerificationAction) (*entities.VerificationCode, error)
	// Consume flips a fresh code to used+expired; ErrCodeAlreadyUsed if another caller got there first
	Consume(ctx context.Context, id uuid.UUID) error
	// Redeem records the password reset against a consumed code exactly once
	Redeem(ctx context.Context, id uuid.UUID, at time.Time) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
