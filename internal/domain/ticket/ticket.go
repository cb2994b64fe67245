package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

const (
	maxSubjectLength     = 200
	maxDescriptionLength = 10000
)

// Ticket is a support request. The owner is fixed at creation; workflow
// fields (status, priority, assignee) are only changed by staff, which the
// application layer enforces.
type Ticket struct {
	id           uint
	subject      string
	description  string
	status       vo.TicketStatus
	priority     vo.Priority
	ownerID      uint
	assigneeID   *uint
	categoryID   *uint
	createdAt    time.Time
	updatedAt    time.Time
	lastActivity time.Time
}

func NewTicket(subject, description string, priority vo.Priority, ownerID uint, categoryID *uint) (*Ticket, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	subject, err := normalizeSubject(subject)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = vo.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	now := biztime.NowUTC()
	return &Ticket{
		subject:      subject,
		description:  description,
		status:       vo.StatusOpen,
		priority:     priority,
		ownerID:      ownerID,
		categoryID:   copyID(categoryID),
		createdAt:    now,
		updatedAt:    now,
		lastActivity: now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence.
func ReconstructTicket(
	id uint,
	subject, description string,
	status vo.TicketStatus,
	priority vo.Priority,
	ownerID uint,
	assigneeID, categoryID *uint,
	createdAt, updatedAt, lastActivity time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	return &Ticket{
		id:           id,
		subject:      subject,
		description:  description,
		status:       status,
		priority:     priority,
		ownerID:      ownerID,
		assigneeID:   copyID(assigneeID),
		categoryID:   copyID(categoryID),
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastActivity: lastActivity,
	}, nil
}

func normalizeSubject(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if utf8.RuneCountInString(subject) > maxSubjectLength {
		return "", fmt.Errorf("subject exceeds maximum length of %d characters", maxSubjectLength)
	}
	return subject, nil
}

// validateDescription allows an empty description.
func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	return nil
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) OwnerID() uint {
	return t.ownerID
}

func (t *Ticket) AssigneeID() *uint {
	return copyID(t.assigneeID)
}

func (t *Ticket) CategoryID() *uint {
	return copyID(t.categoryID)
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) LastActivity() time.Time {
	return t.lastActivity
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.ownerID == userID
}

func (t *Ticket) ChangeSubject(subject string) error {
	subject, err := normalizeSubject(subject)
	if err != nil {
		return err
	}
	t.subject = subject
	t.touch()
	return nil
}

func (t *Ticket) ChangeDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	t.description = description
	t.touch()
	return nil
}

// ChangeStatus reports whether the status actually changed. Any status may
// follow any other; staff move tickets freely, including reopening.
func (t *Ticket) ChangeStatus(status vo.TicketStatus) (bool, error) {
	if !status.IsValid() {
		return false, fmt.Errorf("invalid ticket status: %s", status)
	}
	if t.status == status {
		return false, nil
	}
	t.status = status
	t.touch()
	return true, nil
}

func (t *Ticket) ChangePriority(priority vo.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	t.priority = priority
	t.touch()
	return nil
}

// AssignTo sets the assignee. A nil id unassigns the ticket.
func (t *Ticket) AssignTo(assigneeID *uint) {
	t.assigneeID = copyID(assigneeID)
	t.touch()
}

// ChangeCategory sets the category. A nil id clears it.
func (t *Ticket) ChangeCategory(categoryID *uint) {
	t.categoryID = copyID(categoryID)
	t.touch()
}

// RecordActivity bumps last_activity without marking the ticket itself as
// edited. New comments call this.
func (t *Ticket) RecordActivity() {
	t.lastActivity = biztime.NowUTC()
}

func (t *Ticket) touch() {
	now := biztime.NowUTC()
	t.updatedAt = now
	t.lastActivity = now
}
