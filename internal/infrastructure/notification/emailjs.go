package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
	"trackify.backend/pkg/logger"
)

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken"`
	TemplateParams emailJSParameters `json:"template_params"`
}

type emailJSParameters struct {
	Email string `json:"email"`
	Code  int    `json:"code"`
	Link  string `json:"link"`
}

// EmailJSSender delivers messages through the EmailJS REST API
type EmailJSSender struct {
	client *http.Client
	url    string
}

// NewEmailJSSender creates a sender posting to url with the given request timeout
func NewEmailJSSender(url string, timeout time.Duration) *EmailJSSender {
	return &EmailJSSender{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Send posts a single request; there are no retries
func (s *EmailJSSender) Send(ctx context.Context, cfg *entities.EmailConfig, msg entities.EmailMessage) error {
	if cfg.ServiceID == "" || cfg.PublicKey == "" || cfg.PrivateKey == "" || msg.TemplateID == "" {
		return domainerrors.ErrEmailConfigMissing
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   cfg.ServiceID,
		TemplateID:  msg.TemplateID,
		UserID:      cfg.PublicKey,
		AccessToken: cfg.PrivateKey,
		TemplateParams: emailJSParameters{
			Email: msg.To,
			Code:  msg.Code,
			Link:  msg.Link,
		},
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrEmailDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Warn(ctx, "EmailJS rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return fmt.Errorf("%w: emailjs status %d", domainerrors.ErrEmailDeliveryFailed, resp.StatusCode)
	}

	return nil
}
