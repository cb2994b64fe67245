// Package seed creates the initial admin account and default categories.
// Running it again leaves existing rows alone.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type AdminData struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

type CategoryData struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Data struct {
	Admin      AdminData      `yaml:"admin"`
	Categories []CategoryData `yaml:"categories"`
}

// DefaultData is used when no seed file is given. The admin password must be
// changed after the first login.
func DefaultData() *Data {
	return &Data{
		Admin: AdminData{
			Email:    "admin@qreserve.local",
			Password: "admin12345",
			FullName: "System Administrator",
		},
		Categories: []CategoryData{
			{Name: "General Support", Description: "General questions and support requests"},
			{Name: "Technical Issue", Description: "Technical problems and bugs"},
			{Name: "Feature Request", Description: "Requests for new features"},
			{Name: "Bug Report", Description: "Report software bugs"},
			{Name: "Account Issue", Description: "Account-related problems"},
		},
	}
}

func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if data.Admin.Email == "" {
		return nil, fmt.Errorf("seed file: admin.email is required")
	}
	if len(data.Admin.Password) < 8 {
		return nil, fmt.Errorf("seed file: admin.password must be at least 8 characters")
	}
	if data.Admin.FullName == "" {
		data.Admin.FullName = "Administrator"
	}
	return &data, nil
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Result reports what a run created.
type Result struct {
	AdminCreated      bool
	CategoriesCreated int
}

type Seeder struct {
	userRepo     user.Repository
	categoryRepo category.Repository
	hasher       PasswordHasher
	txManager    db.Transactor
	logger       logger.Interface
}

func NewSeeder(
	userRepo user.Repository,
	categoryRepo category.Repository,
	hasher PasswordHasher,
	txManager db.Transactor,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		hasher:       hasher,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *Seeder) Run(ctx context.Context, data *Data) (*Result, error) {
	result := &Result{}
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.seedAdmin(txCtx, data.Admin)
		if err != nil {
			return err
		}
		result.AdminCreated = created

		for _, c := range data.Categories {
			created, err := s.seedCategory(txCtx, c)
			if err != nil {
				return err
			}
			if created {
				result.CategoriesCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("seed completed",
		"admin_created", result.AdminCreated,
		"categories_created", result.CategoriesCreated,
	)
	return result, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, admin AdminData) (bool, error) {
	email, err := vo.NewEmail(admin.Email)
	if err != nil {
		return false, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		s.logger.Infow("admin user already exists", "email", email.Masked())
		return false, nil
	}

	name, err := vo.NewFullName(admin.FullName)
	if err != nil {
		return false, err
	}
	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return false, err
	}
	u, err := user.NewUser(email, name, hash, authorization.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Infow("admin user created", "email", email.Masked(), "user_id", u.ID())
	return true, nil
}

func (s *Seeder) seedCategory(ctx context.Context, data CategoryData) (bool, error) {
	c, err := category.NewCategory(data.Name, data.Description)
	if err != nil {
		return false, err
	}
	existing, err := s.categoryRepo.GetByName(ctx, c.Name())
	if err != nil {
		return false, fmt.Errorf("failed to look up category %q: %w", c.Name(), err)
	}
	if existing != nil {
		return false, nil
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return false, fmt.Errorf("failed to create category %q: %w", c.Name(), err)
	}
	return true, nil
}
