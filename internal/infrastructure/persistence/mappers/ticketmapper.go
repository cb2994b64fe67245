package mappers

import (
	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// TicketMapper handles the conversion between ticket aggregates (tickets,
// comments, votes, attachments) and their persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)

	VoteToModel(v *ticket.Vote) *models.VoteModel
	VoteToDomain(model *models.VoteModel) (*ticket.Vote, error)

	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		OwnerID:      t.OwnerID(),
		AssigneeID:   t.AssigneeID(),
		CategoryID:   t.CategoryID(),
		CreatedAt:    biztime.ToMilli(t.CreatedAt()),
		UpdatedAt:    biztime.ToMilli(t.UpdatedAt()),
		LastActivity: biztime.ToMilli(t.LastActivity()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		model.Description,
		vo.TicketStatus(model.Status),
		vo.Priority(model.Priority),
		model.OwnerID,
		model.AssigneeID,
		model.CategoryID,
		biztime.FromMilli(model.CreatedAt),
		biztime.FromMilli(model.UpdatedAt),
		biztime.FromMilli(model.LastActivity),
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		ParentID:  c.ParentID(),
		Content:   c.Content(),
		CreatedAt: biztime.ToMilli(c.CreatedAt()),
		UpdatedAt: biztime.ToMilli(c.UpdatedAt()),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.ParentID,
		model.Content,
		biztime.FromMilli(model.CreatedAt),
		biztime.FromMilli(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) VoteToModel(v *ticket.Vote) *models.VoteModel {
	return &models.VoteModel{
		ID:        v.ID(),
		TicketID:  v.TicketID(),
		UserID:    v.UserID(),
		VoteType:  v.Type().String(),
		CreatedAt: biztime.ToMilli(v.CreatedAt()),
		UpdatedAt: biztime.ToMilli(v.UpdatedAt()),
	}
}

func (m *TicketMapperImpl) VoteToDomain(model *models.VoteModel) (*ticket.Vote, error) {
	return ticket.ReconstructVote(
		model.ID,
		model.TicketID,
		model.UserID,
		vo.VoteType(model.VoteType),
		biztime.FromMilli(model.CreatedAt),
		biztime.FromMilli(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		UploadedByID: a.UploadedByID(),
		Filename:     a.Filename(),
		FilePath:     a.FilePath(),
		FileSize:     a.FileSize(),
		MimeType:     a.MimeType(),
		CreatedAt:    biztime.ToMilli(a.CreatedAt()),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploadedByID,
		model.Filename,
		model.FilePath,
		model.FileSize,
		model.MimeType,
		biztime.FromMilli(model.CreatedAt),
	)
}
