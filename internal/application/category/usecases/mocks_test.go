package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/qreserve/qreserve/internal/domain/category"
)

// memoryCategoryRepository mirrors the gorm repository: names compare
// case-insensitively, List orders by name, and reads return copies so a use
// case mutating a loaded entity does not change the stored row.
type memoryCategoryRepository struct {
	items  map[uint]*category.Category
	nextID uint

	CreateFunc func(ctx context.Context, c *category.Category) error
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{items: make(map[uint]*category.Category), nextID: 1}
}

func (m *memoryCategoryRepository) add(name string, active bool) *category.Category {
	c, err := category.NewCategory(name, "")
	if err != nil {
		panic(err)
	}
	c.SetActive(active)
	_ = m.Create(context.Background(), c)
	return c
}

func (m *memoryCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.items[c.ID()] = cloneCategory(c)
	return nil
}

func (m *memoryCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	m.items[c.ID()] = cloneCategory(c)
	return nil
}

func (m *memoryCategoryRepository) Delete(ctx context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

func (m *memoryCategoryRepository) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	return cloneCategory(m.items[id]), nil
}

func (m *memoryCategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name(), name) {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (m *memoryCategoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}

func (m *memoryCategoryRepository) List(ctx context.Context, includeInactive bool) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(m.items))
	for _, c := range m.items {
		if includeInactive || c.IsActive() {
			out = append(out, cloneCategory(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func cloneCategory(c *category.Category) *category.Category {
	if c == nil {
		return nil
	}
	out, err := category.ReconstructCategory(c.ID(), c.Name(), c.Description(), c.IsActive(), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return out
}

type mockTicketCounter struct {
	CountByCategoryFunc func(ctx context.Context, categoryID uint) (int64, error)
}

func (m *mockTicketCounter) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx, categoryID)
	}
	return 0, nil
}
