package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

func TestCreateUserUseCase_Execute(t *testing.T) {
	repo := newMemoryUserRepository()
	uc := NewCreateUserUseCase(repo, prefixHasher{}, db.NoopTransactor{}, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), CreateUserCommand{
		ActorRole: authorization.RoleAdmin,
		Email:     "agent@example.com",
		Password:  "12345678",
		FullName:  "Support Agent",
		Role:      "agent",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent", got.Role)

	_, err = uc.Execute(context.Background(), CreateUserCommand{
		ActorRole: authorization.RoleAdmin, Email: "x@example.com", Password: "12345678", FullName: "X", Role: "root",
	})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateUserCommand{
		ActorRole: authorization.RoleAgent, Email: "y@example.com", Password: "12345678", FullName: "Y",
	})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestListUsersUseCase_Execute(t *testing.T) {
	repo := newMemoryUserRepository()
	repo.add("a@example.com", "h", authorization.RoleEndUser)
	repo.add("b@example.com", "h", authorization.RoleAgent)
	repo.add("c@example.com", "h", authorization.RoleEndUser)
	uc := NewListUsersUseCase(repo, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListUsersQuery{ActorRole: authorization.RoleAdmin, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Users, 2)
	assert.Equal(t, "c@example.com", result.Users[0].Email, "newest first")

	result, err = uc.Execute(context.Background(), ListUsersQuery{ActorRole: authorization.RoleAdmin, Role: "agent"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	_, err = uc.Execute(context.Background(), ListUsersQuery{ActorRole: authorization.RoleAdmin, Role: "root"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListUsersQuery{ActorRole: authorization.RoleAdmin, PageSize: 500})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListUsersQuery{ActorRole: authorization.RoleAgent})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestUpdateUserUseCase_Execute(t *testing.T) {
	repo := newMemoryUserRepository()
	target := repo.add("ann@example.com", "h", authorization.RoleEndUser)
	repo.add("bob@example.com", "h", authorization.RoleEndUser)
	uc := NewUpdateUserUseCase(repo, prefixHasher{}, db.NoopTransactor{}, logger.NewNopLogger())

	email, role, active, dark := "ANN.LEE@example.com", "agent", false, true
	got, err := uc.Execute(context.Background(), UpdateUserCommand{
		ActorRole: authorization.RoleAdmin,
		UserID:    target.ID(),
		Email:     &email,
		Role:      &role,
		IsActive:  &active,
		DarkMode:  &dark,
	})
	require.NoError(t, err)
	assert.Equal(t, "ann.lee@example.com", got.Email)
	assert.Equal(t, "agent", got.Role)
	assert.False(t, got.IsActive)
	assert.True(t, got.DarkMode)

	taken := "bob@example.com"
	_, err = uc.Execute(context.Background(), UpdateUserCommand{ActorRole: authorization.RoleAdmin, UserID: target.ID(), Email: &taken})
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "ann.lee@example.com", target.Email().String())

	badRole := "root"
	_, err = uc.Execute(context.Background(), UpdateUserCommand{ActorRole: authorization.RoleAdmin, UserID: target.ID(), Role: &badRole})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), UpdateUserCommand{ActorRole: authorization.RoleAdmin, UserID: 99})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), UpdateUserCommand{ActorRole: authorization.RoleEndUser, UserID: target.ID()})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestDeleteUserUseCase_Execute(t *testing.T) {
	repo := newMemoryUserRepository()
	admin := repo.add("admin@example.com", "h", authorization.RoleAdmin)
	owner := repo.add("owner@example.com", "h", authorization.RoleEndUser)
	idle := repo.add("idle@example.com", "h", authorization.RoleEndUser)
	counter := &mockReferenceCounter{
		CountUserReferencesFunc: func(ctx context.Context, userID uint) (int64, error) {
			if userID == owner.ID() {
				return 1, nil
			}
			return 0, nil
		},
	}
	uc := NewDeleteUserUseCase(repo, counter, db.NoopTransactor{}, logger.NewNopLogger())
	asAdmin := func(id uint) DeleteUserCommand {
		return DeleteUserCommand{ActorID: admin.ID(), ActorRole: authorization.RoleAdmin, UserID: id}
	}

	err := uc.Execute(context.Background(), asAdmin(admin.ID()))
	require.Error(t, err)
	assert.Equal(t, 400, errors.GetAppError(err).Code)

	err = uc.Execute(context.Background(), asAdmin(owner.ID()))
	assert.True(t, errors.IsConflictError(err))

	require.NoError(t, uc.Execute(context.Background(), asAdmin(idle.ID())))
	assert.NotContains(t, repo.users, idle.ID())

	err = uc.Execute(context.Background(), asAdmin(idle.ID()))
	assert.True(t, errors.IsNotFoundError(err))
}
