package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/config"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		FromAddress: "noreply@example.com",
		FromName:    "q-reserve",
	})

	m := s.buildMessage(&notification.RenderedEmail{
		To:       "owner@example.com",
		Subject:  "Ticket #1 Created - printer jam",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	})

	assert.Equal(t, []string{"owner@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Ticket #1 Created - printer jam"}, m.GetHeader("Subject"))
	require.Len(t, m.GetHeader("From"), 1)
	assert.Contains(t, m.GetHeader("From")[0], "noreply@example.com")
	assert.Contains(t, m.GetHeader("From")[0], "q-reserve")
}

func TestSMTPSender_RejectsMissingRecipient(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	err := s.Send(context.Background(), &notification.RenderedEmail{Subject: "x"})
	assert.Error(t, err)
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Send(ctx, &notification.RenderedEmail{To: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSender(t *testing.T) {
	log := logger.NewNopLogger()

	assert.IsType(t, &LogSender{}, NewSender(&config.EmailConfig{}, log))
	assert.IsType(t, &SMTPSender{}, NewSender(&config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 25}, log))

	assert.NoError(t, NewLogSender(log).Send(context.Background(), &notification.RenderedEmail{To: "a@example.com"}))
}
