package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/category/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/mapper"
)

// ListCategoriesQuery is served to anonymous callers too; Role is empty then.
type ListCategoriesQuery struct {
	Role            authorization.UserRole
	IncludeInactive bool
}

type ListCategoriesUseCase struct {
	repo   category.Repository
	logger logger.Interface
}

func NewListCategoriesUseCase(repo category.Repository, logger logger.Interface) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo, logger: logger}
}

// Execute ignores IncludeInactive for callers that cannot manage categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, q ListCategoriesQuery) ([]*dto.CategoryDTO, error) {
	includeInactive := q.IncludeInactive && authorization.Can(q.Role, authorization.CapCategoryManage)

	categories, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return mapper.MapSlice(categories, dto.ToCategoryDTO), nil
}

type GetCategoryUseCase struct {
	repo   category.Repository
	logger logger.Interface
}

func NewGetCategoryUseCase(repo category.Repository, logger logger.Interface) *GetCategoryUseCase {
	return &GetCategoryUseCase{repo: repo, logger: logger}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*dto.CategoryDTO, error) {
	c, err := loadCategory(ctx, uc.repo, id, uc.logger)
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryDTO(c), nil
}

func loadCategory(ctx context.Context, repo category.Repository, id uint, log logger.Interface) (*category.Category, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get category", "category_id", id, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("category not found")
	}
	return c, nil
}
