package notification

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	"trackify.backend/internal/domain/entities"
	domainerrors "trackify.backend/internal/domain/errors"
)

type dialerStub struct {
	sent []*gomail.Message
	err  error
}

func (d *dialerStub) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPSender_Send(t *testing.T) {
	dialer := &dialerStub{}
	sender := &SMTPSender{dialer: dialer, from: "no-reply@trackify.local"}

	err := sender.Send(context.Background(), nil, entities.EmailMessage{
		To:   "ada@trackify.io",
		Code: 42,
		Link: "http://localhost/verify?token=t",
	})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"ada@trackify.io"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@trackify.local"}, msg.GetHeader("From"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "000042")
}

func TestSMTPSender_DialFailure(t *testing.T) {
	sender := &SMTPSender{dialer: &dialerStub{err: errors.New("connection refused")}, from: "x@y.z"}
	err := sender.Send(context.Background(), nil, entities.EmailMessage{To: "a@b.c"})
	require.ErrorIs(t, err, domainerrors.ErrEmailDeliveryFailed)
}

func TestNewSMTPSender(t *testing.T) {
	s := NewSMTPSender("localhost", 2525, "u", "p", "from@trackify.local")
	require.NotNil(t, s.dialer)
	assert.Equal(t, "from@trackify.local", s.from)
}
