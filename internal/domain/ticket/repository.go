package ticket

import (
	"context"

	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/query"
)

// Sort keys accepted by TicketRepository.List.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortBySubject   = "subject"
	SortByPriority  = "priority"
)

// ListFilter narrows a ticket listing. OwnerID restricts results to one
// owner. Search nil means no text filter; an empty string matches every
// ticket.
type ListFilter struct {
	query.PageFilter
	query.SortFilter
	Status     *vo.TicketStatus
	CategoryID *uint
	OwnerID    *uint
	Search     *string
}

// Stats are the derived fields of one ticket.
type Stats struct {
	CommentCount int64
	VoteScore    int64
}

// Repository persists tickets. Get methods return (nil, nil) when the row does
// not exist.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]*Ticket, int64, error)
	// Stats returns derived fields keyed by ticket id. Ids without comments or
	// votes are present with zero values.
	Stats(ctx context.Context, ids []uint) (map[uint]Stats, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	// ListByTicket returns all comments of a ticket ordered by created_at.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}

type VoteRepository interface {
	Create(ctx context.Context, v *Vote) error
	Update(ctx context.Context, v *Vote) error
	Delete(ctx context.Context, id uint) error
	GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*Vote, error)
	Score(ctx context.Context, ticketID uint) (int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uint) (*Attachment, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
