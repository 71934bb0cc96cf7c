package repositories

import (
	"context"

	"trackify.backend/internal/domain/entities"
)

// EmailConfigRepository defines email provider configuration lookups
type EmailConfigRepository interface {
	GetActiveConfig(ctx context.Context) (*entities.EmailConfig, error)
	GetTemplate(ctx context.Context, action entities.VerificationAction) (*entities.EmailTemplate, error)
	UpsertConfig(ctx context.Context, cfg *entities.EmailConfig) error
	UpsertTemplate(ctx context.Context, tpl *entities.EmailTemplate) error
}
