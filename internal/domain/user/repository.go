package user

import (
	"context"

	"github.com/qreserve/qreserve/internal/shared/query"
)

// Repository persists users. Get methods return (nil, nil) when the row does
// not exist; callers decide which error that becomes.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}

type ListFilter struct {
	query.PageFilter
	Role     string
	IsActive *bool
}
