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

type CreateCategoryCommand struct {
	Role        authorization.UserRole
	Name        string
	Description string
}

type CreateCategoryUseCase struct {
	repo      category.Repository
	txManager db.Transactor
	logger    logger.Interface
}

func NewCreateCategoryUseCase(repo category.Repository, txManager db.Transactor, logger logger.Interface) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error) {
	if !authorization.Can(cmd.Role, authorization.CapCategoryManage) {
		return nil, errors.NewForbiddenError("not authorized to manage categories")
	}

	newCategory, err := category.NewCategory(cmd.Name, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.repo.GetByName(txCtx, newCategory.Name())
		if err != nil {
			return fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil {
			return errors.NewConflictError("category name already exists")
		}
		return uc.repo.Create(txCtx, newCategory)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("category name already exists")
		}
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to create category", "name", newCategory.Name(), "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("category created", "category_id", newCategory.ID(), "name", newCategory.Name())
	return dto.ToCategoryDTO(newCategory), nil
}
