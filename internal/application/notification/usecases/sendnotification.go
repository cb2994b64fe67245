package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/qreserve/qreserve/internal/domain/notification"
	nvo "github.com/qreserve/qreserve/internal/domain/notification/valueobjects"
	uvo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

const defaultProductName = "q-reserve"

// EmailSender delivers one rendered email.
type EmailSender interface {
	Send(ctx context.Context, email *notification.RenderedEmail) error
}

type SendNotificationUseCase struct {
	templates   map[nvo.Kind]*notification.EmailTemplate
	sender      EmailSender
	baseURL     string
	productName string
	logger      logger.Interface
}

// NewSendNotificationUseCase renders with the built-in templates. baseURL is
// the web client root used for ticket links.
func NewSendNotificationUseCase(sender EmailSender, baseURL string, logger logger.Interface) (*SendNotificationUseCase, error) {
	templates, err := notification.DefaultTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return &SendNotificationUseCase{
		templates:   templates,
		sender:      sender,
		baseURL:     strings.TrimRight(baseURL, "/"),
		productName: defaultProductName,
		logger:      logger,
	}, nil
}

func (uc *SendNotificationUseCase) Execute(ctx context.Context, msg *notification.Message) error {
	tmpl, ok := uc.templates[msg.Kind]
	if !ok {
		return fmt.Errorf("no template for notification kind %s", msg.Kind)
	}

	email, err := tmpl.Render(notification.TemplateData{
		Message:              msg,
		RecipientDisplayName: displayName(msg),
		TicketURL:            fmt.Sprintf("%s/tickets/%d", uc.baseURL, msg.TicketID),
		ProductName:          uc.productName,
	})
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", msg.Kind, err)
	}

	if err := uc.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send %s email to %s: %w", msg.Kind, msg.RecipientEmail, err)
	}

	uc.logger.Infow("notification sent",
		"id", msg.ID,
		"kind", msg.Kind,
		"ticket_id", msg.TicketID,
		"recipient", msg.RecipientEmail,
	)
	return nil
}

// displayName falls back to the local part of the address when the message
// carries no usable name.
func displayName(msg *notification.Message) string {
	if name, err := uvo.NewFullName(msg.RecipientName); err == nil {
		return name.DisplayName()
	}
	local, _, _ := strings.Cut(msg.RecipientEmail, "@")
	return local
}
