package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/user"
	uservo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/query"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	u := f.createUser(t, "Ann@Example.com", authorization.RoleAgent)
	require.NotZero(t, u.ID())

	byEmail, err := f.users.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID(), byEmail.ID())
	assert.Equal(t, "ann@example.com", byEmail.Email().String())
	assert.Equal(t, authorization.RoleAgent, byEmail.Role())
	assert.True(t, byEmail.IsActive())

	missing, err := f.users.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = f.users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	f := newFixtures(t)
	f.createUser(t, "dup@example.com", authorization.RoleEndUser)

	e, _ := uservo.NewEmail("dup@example.com")
	n, _ := uservo.NewFullName("Other")
	u, err := user.NewUser(e, n, "hash", authorization.RoleEndUser)
	require.NoError(t, err)

	err = f.users.Create(context.Background(), u)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestUserRepository_UpdatePersistsFalseAndPreferences(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	u := f.createUser(t, "pref@example.com", authorization.RoleEndUser)

	u.Deactivate()
	u.UpdatePreferences(user.Preferences{DarkMode: true, Extra: map[string]interface{}{"lang": "de"}})
	require.NoError(t, f.users.Update(ctx, u))

	got, err := f.users.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, got.IsActive())
	assert.True(t, got.Preferences().DarkMode)
	assert.Equal(t, "de", got.Preferences().Extra["lang"])
}

func TestUserRepository_Delete(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	u := f.createUser(t, "gone@example.com", authorization.RoleEndUser)

	require.NoError(t, f.users.Delete(ctx, u.ID()))
	got, err := f.users.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	err = f.users.Delete(ctx, u.ID())
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUserRepository_ListNewestFirst(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	first := f.createUser(t, "a@example.com", authorization.RoleEndUser)
	second := f.createUser(t, "b@example.com", authorization.RoleAdmin)
	third := f.createUser(t, "c@example.com", authorization.RoleEndUser)

	users, total, err := f.users.List(ctx, user.ListFilter{PageFilter: query.PageFilter{Page: 1, PageSize: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, third.ID(), users[0].ID())
	assert.Equal(t, second.ID(), users[1].ID())

	users, total, err = f.users.List(ctx, user.ListFilter{Role: "end_user"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, first.ID(), users[1].ID())

	byIDs, err := f.users.GetByIDs(ctx, []uint{first.ID(), third.ID()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
}
