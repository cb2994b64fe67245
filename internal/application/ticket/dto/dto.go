// Package dto holds the read models returned by ticket, comment and
// attachment use cases.
package dto

import (
	"time"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
)

type UserSummaryDTO struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type CategorySummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TicketDTO struct {
	ID              uint                `json:"id"`
	Subject         string              `json:"subject"`
	Description     string              `json:"description"`
	DescriptionHTML string              `json:"description_html"`
	Status          string              `json:"status"`
	Priority        string              `json:"priority"`
	OwnerID         uint                `json:"owner_id"`
	AssigneeID      *uint               `json:"assignee_id"`
	CategoryID      *uint               `json:"category_id"`
	Owner           *UserSummaryDTO     `json:"owner"`
	Assignee        *UserSummaryDTO     `json:"assignee"`
	Category        *CategorySummaryDTO `json:"category"`
	CommentCount    int64               `json:"comment_count"`
	VoteScore       int64               `json:"vote_score"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	LastActivity    time.Time           `json:"last_activity"`
}

// TicketDetailDTO adds the caller's own vote to a single-ticket read.
type TicketDetailDTO struct {
	*TicketDTO
	UserVote *string `json:"user_vote"`
}

type CommentDTO struct {
	ID          uint            `json:"id"`
	TicketID    uint            `json:"ticket_id"`
	AuthorID    uint            `json:"author_id"`
	ParentID    *uint           `json:"parent_id"`
	Content     string          `json:"content"`
	ContentHTML string          `json:"content_html"`
	Author      *UserSummaryDTO `json:"author"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Replies     []*CommentDTO   `json:"replies"`
}

type VoteResultDTO struct {
	TicketID  uint    `json:"ticket_id"`
	Action    string  `json:"action"`
	VoteScore int64   `json:"vote_score"`
	UserVote  *string `json:"user_vote"`
}

type AttachmentDTO struct {
	ID           uint      `json:"id"`
	TicketID     uint      `json:"ticket_id"`
	UploadedByID uint      `json:"uploaded_by_id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToUserSummaryDTO(u *user.User) *UserSummaryDTO {
	if u == nil {
		return nil
	}
	return &UserSummaryDTO{
		ID:       u.ID(),
		Email:    u.Email().String(),
		FullName: u.FullName().String(),
		Role:     u.Role().String(),
	}
}

func ToCategorySummaryDTO(c *category.Category) *CategorySummaryDTO {
	if c == nil {
		return nil
	}
	return &CategorySummaryDTO{ID: c.ID(), Name: c.Name()}
}

// ToTicketDTO fills the fields owned by the ticket itself. Summaries, stats
// and rendered HTML are attached by the caller.
func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:           t.ID(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		OwnerID:      t.OwnerID(),
		AssigneeID:   t.AssigneeID(),
		CategoryID:   t.CategoryID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		LastActivity: t.LastActivity(),
	}
}

func ToCommentDTO(c *ticket.Comment) *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		ParentID:  c.ParentID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
		Replies:   []*CommentDTO{},
	}
}

func ToAttachmentDTO(a *ticket.Attachment) *AttachmentDTO {
	if a == nil {
		return nil
	}
	return &AttachmentDTO{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		UploadedByID: a.UploadedByID(),
		Filename:     a.Filename(),
		FileSize:     a.FileSize(),
		MimeType:     a.MimeType(),
		CreatedAt:    a.CreatedAt(),
	}
}
