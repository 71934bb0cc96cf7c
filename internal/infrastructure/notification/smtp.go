package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers messages over SMTP
type SMTPSender struct {
	dialer mailDialer
	from   string
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(_ context.Context, _ *entities.EmailConfig, msg entities.EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", "Your Trackify verification code")
	m.SetBody("text/html", renderCodeEmail(msg))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrEmailDeliveryFailed, err)
	}
	return nil
}

func renderCodeEmail(msg entities.EmailMessage) string {
	return fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Your verification code is <strong>%06d</strong>.</p>
		<p>You can also continue here: <a href="%s">%s</a></p>
		<p>If you did not request this, you can ignore this email.</p>
	`, msg.Code, msg.Link, msg.Link)
}
