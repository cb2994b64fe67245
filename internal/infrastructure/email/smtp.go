// Package email delivers rendered notification emails.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/config"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Sender delivers one email.
type Sender interface {
	Send(ctx context.Context, email *notification.RenderedEmail) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

func SMTPConfigFrom(cfg *config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

type SMTPSender struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPSender{
		config: config,
		dialer: dialer,
	}
}

// Send dials per message. gomail has no context support, so ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, email *notification.RenderedEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if email.To == "" {
		return fmt.Errorf("email recipient is required")
	}

	if err := s.dialer.DialAndSend(s.buildMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(email *notification.RenderedEmail) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.TextBody)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}
	return m
}

// LogSender logs instead of sending. Used when no SMTP host is configured.
type LogSender struct {
	logger logger.Interface
}

func NewLogSender(log logger.Interface) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(_ context.Context, email *notification.RenderedEmail) error {
	s.logger.Warnw("email service not configured, email not sent",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

// NewSender picks SMTP when a host is configured and the logging sender
// otherwise.
func NewSender(cfg *config.EmailConfig, log logger.Interface) Sender {
	if cfg.SMTPHost == "" {
		return NewLogSender(log)
	}
	return NewSMTPSender(SMTPConfigFrom(cfg))
}
