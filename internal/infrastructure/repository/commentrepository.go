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

type CommentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewCommentRepository(db *gorm.DB, logger logger.Interface) ticket.CommentRepository {
	return &CommentRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create comment", "ticket_id", c.TicketID(), "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	var model models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get comment", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.CommentToDomain(&model)
}

func (r *CommentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var list []models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to list comments", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*ticket.Comment, 0, len(list))
	for i := range list {
		c, err := r.mapper.CommentToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
