package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/category/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type UpdateCategoryCommand struct {
	Role        authorization.UserRole
	CategoryID  uint
	Name        *string
	Description *string
	IsActive    *bool
}

type UpdateCategoryUseCase struct {
	repo      category.Repository
	txManager db.Transactor
	logger    logger.Interface
}

func NewUpdateCategoryUseCase(repo category.Repository, txManager db.Transactor, logger logger.Interface) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, cmd UpdateCategoryCommand) (*dto.CategoryDTO, error) {
	c, err := loadCategory(ctx, uc.repo, cmd.CategoryID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.Role, authorization.CapCategoryManage) {
		return nil, errors.NewForbiddenError("not authorized to manage categories")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Name != nil {
			name, err := category.NormalizeName(*cmd.Name)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			existing, err := uc.repo.GetByName(txCtx, name)
			if err != nil {
				return fmt.Errorf("failed to check category name: %w", err)
			}
			if existing != nil && existing.ID() != c.ID() {
				return errors.NewConflictError("category name already exists")
			}
			if err := c.Rename(name); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}
		if cmd.Description != nil {
			c.ChangeDescription(*cmd.Description)
		}
		if cmd.IsActive != nil {
			c.SetActive(*cmd.IsActive)
		}
		return uc.repo.Update(txCtx, c)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("category name already exists")
		}
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to update category", "category_id", cmd.CategoryID, "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("category updated", "category_id", c.ID())
	return dto.ToCategoryDTO(c), nil
}
