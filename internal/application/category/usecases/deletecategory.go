package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// TicketCounter reports how many tickets reference a category.
type TicketCounter interface {
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type DeleteCategoryCommand struct {
	Role       authorization.UserRole
	CategoryID uint
}

type DeleteCategoryUseCase struct {
	repo      category.Repository
	tickets   TicketCounter
	txManager db.Transactor
	logger    logger.Interface
}

func NewDeleteCategoryUseCase(repo category.Repository, tickets TicketCounter, txManager db.Transactor, logger logger.Interface) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		repo:      repo,
		tickets:   tickets,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	c, err := loadCategory(ctx, uc.repo, cmd.CategoryID, uc.logger)
	if err != nil {
		return err
	}
	if !authorization.Can(cmd.Role, authorization.CapCategoryManage) {
		return errors.NewForbiddenError("not authorized to manage categories")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		count, err := uc.tickets.CountByCategory(txCtx, c.ID())
		if err != nil {
			return fmt.Errorf("failed to count category tickets: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError("category is in use",
				fmt.Sprintf("%d ticket(s) reference this category", count))
		}
		return uc.repo.Delete(txCtx, c.ID())
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to delete category", "category_id", c.ID(), "error", err)
		}
		return err
	}

	uc.logger.Infow("category deleted", "category_id", c.ID(), "name", c.Name())
	return nil
}
