package mappers

import (
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

func CategoryToModel(c *category.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		IsActive:    c.IsActive(),
		CreatedAt:   biztime.ToMilli(c.CreatedAt()),
		UpdatedAt:   biztime.ToMilli(c.UpdatedAt()),
	}
}

func CategoryToDomain(model *models.CategoryModel) (*category.Category, error) {
	return category.ReconstructCategory(
		model.ID,
		model.Name,
		model.Description,
		model.IsActive,
		biztime.FromMilli(model.CreatedAt),
		biztime.FromMilli(model.UpdatedAt),
	)
}
