// Package notification describes the emails sent when tickets and comments
// change, and the queue they travel through between the API and the worker.
package notification

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	vo "github.com/qreserve/qreserve/internal/domain/notification/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// Message is the queued payload. It carries everything the worker needs to
// render and send the email without reading the database.
type Message struct {
	ID             string  `json:"id"`
	Kind           vo.Kind `json:"kind"`
	RecipientEmail string  `json:"recipient_email"`
	RecipientName  string  `json:"recipient_name,omitempty"`
	TicketID       uint    `json:"ticket_id"`
	TicketSubject  string  `json:"ticket_subject"`
	Status         string  `json:"status,omitempty"`
	CommenterName  string  `json:"commenter_name,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

func newMessage(kind vo.Kind, recipientEmail, recipientName string, ticketID uint, ticketSubject string) *Message {
	return &Message{
		ID:             uuid.NewString(),
		Kind:           kind,
		RecipientEmail: strings.TrimSpace(recipientEmail),
		RecipientName:  recipientName,
		TicketID:       ticketID,
		TicketSubject:  ticketSubject,
		CreatedAt:      biztime.ToMilli(biztime.NowUTC()),
	}
}

// NewTicketCreated is sent to the ticket's creator.
func NewTicketCreated(ownerEmail, ownerName string, ticketID uint, subject string) *Message {
	return newMessage(vo.KindTicketCreated, ownerEmail, ownerName, ticketID, subject)
}

// NewTicketStatusChanged is sent to the ticket owner with the new status.
func NewTicketStatusChanged(ownerEmail, ownerName string, ticketID uint, subject, status string) *Message {
	m := newMessage(vo.KindTicketStatusChanged, ownerEmail, ownerName, ticketID, subject)
	m.Status = status
	return m
}

// NewCommentCreated is sent to the ticket owner when someone else comments.
func NewCommentCreated(ownerEmail, ownerName string, ticketID uint, subject, commenterName string) *Message {
	m := newMessage(vo.KindCommentCreated, ownerEmail, ownerName, ticketID, subject)
	m.CommenterName = commenterName
	return m
}

func (m *Message) Validate() error {
	if !m.Kind.IsValid() {
		return fmt.Errorf("invalid notification kind: %s", m.Kind)
	}
	if m.RecipientEmail == "" {
		return fmt.Errorf("recipient email is required")
	}
	if m.TicketID == 0 {
		return fmt.Errorf("ticket ID is required")
	}
	if m.Kind == vo.KindTicketStatusChanged && m.Status == "" {
		return fmt.Errorf("status is required for %s", m.Kind)
	}
	return nil
}

func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeMessage parses and validates a queued payload.
func DecodeMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode notification message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
