package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/mappers"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type VoteRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewVoteRepository(db *gorm.DB, logger logger.Interface) ticket.VoteRepository {
	return &VoteRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

// Create relies on the (ticket_id, user_id) unique index: a concurrent
// duplicate vote surfaces as a conflict.
func (r *VoteRepositoryImpl) Create(ctx context.Context, v *ticket.Vote) error {
	model := r.mapper.VoteToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("vote already recorded, retry the request")
		}
		r.logger.Errorw("failed to create vote", "ticket_id", v.TicketID(), "error", err)
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return v.SetID(model.ID)
}

func (r *VoteRepositoryImpl) Update(ctx context.Context, v *ticket.Vote) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.VoteModel{}).
		Where("id = ?", v.ID()).
		Update("vote_type", v.Type().String())
	if result.Error != nil {
		r.logger.Errorw("failed to update vote", "id", v.ID(), "error", result.Error)
		return fmt.Errorf("failed to update vote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("vote was removed concurrently, retry the request")
	}
	return nil
}

func (r *VoteRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.VoteModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete vote", "id", id, "error", err)
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *VoteRepositoryImpl) GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	var model models.VoteModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("ticket_id = ? AND user_id = ?", ticketID, userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get vote", "ticket_id", ticketID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return r.mapper.VoteToDomain(&model)
}

func (r *VoteRepositoryImpl) Score(ctx context.Context, ticketID uint) (int64, error) {
	var score int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.VoteModel{}).
		Select(voteScoreExpr).
		Where("ticket_id = ?", ticketID).
		Scan(&score).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute vote score: %w", err)
	}
	return score, nil
}
