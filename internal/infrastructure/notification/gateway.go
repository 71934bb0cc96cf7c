package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/pkg/logger"
)

// Sender delivers one verification message using a provider config
type Sender interface {
	Send(ctx context.Context, cfg *entities.EmailConfig, msg entities.EmailMessage) error
}

// Gateway routes each message to the sender of the configured provider
type Gateway struct {
	senders map[entities.EmailProvider]Sender
}

// NewGateway creates a gateway over the given provider senders
func NewGateway(senders map[entities.EmailProvider]Sender) *Gateway {
	return &Gateway{senders: senders}
}

// Send delivers msg through the provider named in cfg
func (g *Gateway) Send(ctx context.Context, cfg *entities.EmailConfig, msg entities.EmailMessage) error {
	if cfg == nil {
		return domainerrors.ErrEmailConfigMissing
	}
	sender, ok := g.senders[cfg.Provider]
	if !ok {
		return fmt.Errorf("%w: unknown provider %q", domainerrors.ErrEmailConfigMissing, cfg.Provider)
	}

	if err := sender.Send(ctx, cfg, msg); err != nil {
		logger.Error(ctx, "Failed to send verification email",
			zap.String("provider", string(cfg.Provider)),
			zap.Error(err),
		)
		return err
	}

	logger.Info(ctx, "Verification email sent", zap.String("provider", string(cfg.Provider)))
	return nil
}
