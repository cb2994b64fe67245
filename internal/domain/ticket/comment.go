package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qreserve/qreserve/internal/shared/biztime"
)

const maxCommentLength = 5000

// Comment is a message on a ticket, optionally replying to another comment
// on the same ticket.
type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	parentID  *uint
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// NewComment validates that parent, when given, belongs to the same ticket.
func NewComment(ticketID, authorID uint, content string, parent *Comment) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var parentID *uint
	if parent != nil {
		if parent.id == 0 {
			return nil, fmt.Errorf("parent comment is not persisted")
		}
		if parent.ticketID != ticketID {
			return nil, ErrParentOnOtherTicket
		}
		id := parent.id
		parentID = &id
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		parentID:  parentID,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, parentID *uint, content string, createdAt, updatedAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if parentID != nil && *parentID == id {
		return nil, fmt.Errorf("comment %d cannot reply to itself", id)
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		parentID:  copyID(parentID),
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return fmt.Errorf("comment exceeds maximum length of %d characters", maxCommentLength)
	}
	return nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) ParentID() *uint {
	return copyID(c.parentID)
}

func (c *Comment) IsReply() bool {
	return c.parentID != nil
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
