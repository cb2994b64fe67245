package category

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qreserve/qreserve/internal/shared/biztime"
)

const maxNameLength = 100

// Category groups tickets. Names are unique across all categories.
type Category struct {
	id          uint
	name        string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(name, description string) (*Category, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Category{
		name:        name,
		description: strings.TrimSpace(description),
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructCategory(id uint, name, description string, isActive bool, createdAt, updatedAt time.Time) (*Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	return &Category{
		id:          id,
		name:        name,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// NormalizeName trims name and checks its length. Uniqueness is the
// repository's concern.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("category name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("category name exceeds maximum length of %d characters", maxNameLength)
	}
	return name, nil
}

func (c *Category) ID() uint {
	return c.id
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) Description() string {
	return c.description
}

func (c *Category) IsActive() bool {
	return c.isActive
}

func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Category) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("category ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("category ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Category) Rename(name string) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}
	c.name = name
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) ChangeDescription(description string) {
	c.description = strings.TrimSpace(description)
	c.updatedAt = biztime.NowUTC()
}

func (c *Category) SetActive(active bool) {
	if c.isActive == active {
		return
	}
	c.isActive = active
	c.updatedAt = biztime.NowUTC()
}
