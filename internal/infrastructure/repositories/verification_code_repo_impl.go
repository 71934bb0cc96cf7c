package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/infrastructure/models"
)

// VerificationCodeRepository implements verification code operations
type VerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

// Create persists a freshly issued code
func (r *VerificationCodeRepository) Create(ctx context.Context, code *entities.VerificationCode) error {
	m := &models.VerificationCode{
		ID:           code.ID,
		UserID:       code.UserID,
		Code:         code.Code,
		Token:        code.Token,
		Action:       string(code.Action),
		Duration:     code.Duration,
		ExpiringDate: code.ExpiringDate,
		IsExpired:    code.IsExpired,
		IsUsed:       code.IsUsed,
		RedeemedAt:   code.RedeemedAt.Ptr(),
		Audit:        toModelAudit(code.Audit),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	code.Audit = toEntityAudit(m.Audit)
	return nil
}

// FindByCode looks up a code by its numeric value, token and action
func (r *VerificationCodeRepository) FindByCode(ctx context.Context, code int, token string, action entities.VerificationAction) (*entities.VerificationCode, error) {
	return r.first(GetDB(ctx, r.db).Where("code = ? AND token = ? AND action = ?", code, token, string(action)))
}

// FindByToken looks up a code by token and action
func (r *VerificationCodeRepository) FindByToken(ctx context.Context, token string, action entities.VerificationAction) (*entities.VerificationCode, error) {
	return r.first(GetDB(ctx, r.db).Where("token = ? AND action = ?", token, string(action)))
}

// Consume marks a fresh code as used and expired in a single conditional update
func (r *VerificationCodeRepository) Consume(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).
		Model(&models.VerificationCode{}).
		Where("id = ? AND is_used = ? AND is_expired = ?", id, false, false).
		Updates(map[string]interface{}{
			"is_used":    true,
			"is_expired": true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.consumeConflict(ctx, id)
	}
	return nil
}

// consumeConflict reports why a conditional consume matched no row
func (r *VerificationCodeRepository) consumeConflict(ctx context.Context, id uuid.UUID) error {
	var m models.VerificationCode
	err := GetDB(ctx, r.db).Select("is_used", "is_expired").Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case err != nil:
		return err
	case m.IsUsed:
		return domainerrors.ErrCodeAlreadyUsed
	default:
		return domainerrors.ErrCodeExpired
	}
}

// Redeem stamps a consumed code as spent on a password reset
func (r *VerificationCodeRepository) Redeem(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).
		Model(&models.VerificationCode{}).
		Where("id = ? AND is_used = ? AND redeemed_at IS NULL", id, true).
		Updates(map[string]interface{}{
			"redeemed_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCodeAlreadyUsed
	}
	return nil
}

// ExpireOverdue flags every unexpired code whose expiring date has passed
func (r *VerificationCodeRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&models.VerificationCode{}).
		Where("is_expired = ? AND expiring_date <= ?", false, now).
		Updates(map[string]interface{}{
			"is_expired": true,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *VerificationCodeRepository) first(query *gorm.DB) (*entities.VerificationCode, error) {
	var m models.VerificationCode
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.VerificationCode{
		ID:           m.ID,
		UserID:       m.UserID,
		Code:         m.Code,
		Token:        m.Token,
		Action:       entities.VerificationAction(m.Action),
		Duration:     m.Duration,
		ExpiringDate: m.ExpiringDate,
		IsExpired:    m.IsExpired,
		IsUsed:       m.IsUsed,
		RedeemedAt:   null.TimeFromPtr(m.RedeemedAt),
		Audit:        toEntityAudit(m.Audit),
	}, nil
}
