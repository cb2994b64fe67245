package mappers

import (
	"fmt"

	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// UserMapper converts between the user aggregate and its persistence model.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(list []models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID(),
		Email:          u.Email().String(),
		FullName:       u.FullName().String(),
		HashedPassword: u.HashedPassword(),
		Role:           u.Role().String(),
		IsActive:       u.IsActive(),
		Preferences:    u.Preferences().ToMap(),
		CreatedAt:      biztime.ToMilli(u.CreatedAt()),
		UpdatedAt:      biztime.ToMilli(u.UpdatedAt()),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", model.ID, err)
	}
	fullName, err := vo.NewFullName(model.FullName)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		fullName,
		model.HashedPassword,
		authorization.UserRole(model.Role),
		model.IsActive,
		user.PreferencesFromMap(model.Preferences),
		biztime.FromMilli(model.CreatedAt),
		biztime.FromMilli(model.UpdatedAt),
	)
}

func (m *UserMapperImpl) ToDomainList(list []models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(list))
	for i := range list {
		u, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
