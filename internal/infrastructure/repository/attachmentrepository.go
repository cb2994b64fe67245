package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/mappers"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewAttachmentRepository(db *gorm.DB, logger logger.Interface) ticket.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create attachment", "ticket_id", a.TicketID(), "error", err)
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var list []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("created_at ASC").Order("id ASC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list attachments", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	out := make([]*ticket.Attachment, 0, len(list))
	for i := range list {
		a, err := r.mapper.AttachmentToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
