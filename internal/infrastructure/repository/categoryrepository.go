package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/mappers"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type CategoryRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCategoryRepository(db *gorm.DB, logger logger.Interface) category.Repository {
	return &CategoryRepositoryImpl{db: db, logger: logger}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, c *category.Category) error {
	model := mappers.CategoryToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("category already exists")
		}
		r.logger.Errorw("failed to create category", "name", c.Name(), "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, c *category.Category) error {
	model := mappers.CategoryToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Select("name", "description", "is_active", "updated_at").
		Updates(model)
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("category already exists")
		}
		r.logger.Errorw("failed to update category", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.CategoryModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete category", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	var model models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get category", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return mappers.CategoryToDomain(&model)
}

// GetByName matches names case-insensitively so "Billing" and "billing"
// cannot coexist.
func (r *CategoryRepositoryImpl) GetByName(ctx context.Context, name string) (*category.Category, error) {
	var model models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get category by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return mappers.CategoryToDomain(&model)
}

func (r *CategoryRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}
	var list []models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return toCategories(list)
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, includeInactive bool) ([]*category.Category, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.CategoryModel{})
	if !includeInactive {
		query = query.Scopes(db.ActiveOnly())
	}

	var list []models.CategoryModel
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return toCategories(list)
}

func toCategories(list []models.CategoryModel) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(list))
	for i := range list {
		c, err := mappers.CategoryToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
