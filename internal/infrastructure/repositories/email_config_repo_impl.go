package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/internal/infrastructure/models"
)

// EmailConfigRepository implements email provider configuration lookups
type EmailConfigRepository struct {
	db *gorm.DB
}

// NewEmailConfigRepository creates a new email config repository
func NewEmailConfigRepository(db *gorm.DB) *EmailConfigRepository {
	return &EmailConfigRepository{db: db}
}

// GetActiveConfig returns the most recently updated active provider config
func (r *EmailConfigRepository) GetActiveConfig(ctx context.Context) (*entities.EmailConfig, error) {
	var m models.EmailConfig
	err := GetDB(ctx, r.db).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEmailConfigMissing
		}
		return nil, err
	}
	return &entities.EmailConfig{
		ID:         m.ID,
		Provider:   entities.EmailProvider(m.Provider),
		ServiceID:  m.ServiceID,
		PublicKey:  m.PublicKey,
		PrivateKey: m.PrivateKey,
		IsActive:   m.IsActive,
		Audit:      toEntityAudit(m.Audit),
	}, nil
}

// GetTemplate returns the template registered for an action
func (r *EmailConfigRepository) GetTemplate(ctx context.Context, action entities.VerificationAction) (*entities.EmailTemplate, error) {
	var m models.EmailTemplate
	if err := GetDB(ctx, r.db).Where("action = ?", string(action)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEmailTemplateMissing
		}
		return nil, err
	}
	return &entities.EmailTemplate{
		ID:         m.ID,
		Action:     entities.VerificationAction(m.Action),
		TemplateID: m.TemplateID,
		Audit:      toEntityAudit(m.Audit),
	}, nil
}

// UpsertConfig creates or refreshes the config row for a provider
func (r *EmailConfigRepository) UpsertConfig(ctx context.Context, cfg *entities.EmailConfig) error {
	db := GetDB(ctx, r.db)

	var existing models.EmailConfig
	err := db.Where("provider = ?", string(cfg.Provider)).First(&existing).Error
	switch {
	case err == nil:
		cfg.ID = existing.ID
		return db.Model(&existing).Updates(map[string]interface{}{
			"service_id":  cfg.ServiceID,
			"public_key":  cfg.PublicKey,
			"private_key": cfg.PrivateKey,
			"is_active":   cfg.IsActive,
			"updated_at":  time.Now(),
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.EmailConfig{
			ID:         cfg.ID,
			Provider:   string(cfg.Provider),
			ServiceID:  cfg.ServiceID,
			PublicKey:  cfg.PublicKey,
			PrivateKey: cfg.PrivateKey,
			IsActive:   cfg.IsActive,
			Audit:      toModelAudit(cfg.Audit),
		}).Error
	default:
		return err
	}
}

// UpsertTemplate creates or replaces the template for an action
func (r *EmailConfigRepository) UpsertTemplate(ctx context.Context, tpl *entities.EmailTemplate) error {
	m := &models.EmailTemplate{
		ID:         tpl.ID,
		Action:     string(tpl.Action),
		TemplateID: tpl.TemplateID,
		Audit:      toModelAudit(tpl.Audit),
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "action"}},
		DoUpdates: clause.AssignmentColumns([]string{"template_id", "updated_at"}),
	}).Create(m).Error
}
