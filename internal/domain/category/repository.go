package category

import "context"

// Repository persists categories. Get methods return (nil, nil) when missing.
type Repository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Category, error)
	// List returns categories ordered by name.
	List(ctx context.Context, includeInactive bool) ([]*Category, error)
}
