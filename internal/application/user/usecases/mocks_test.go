package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
)

type memoryUserRepository struct {
	users  map[uint]*user.User
	nextID uint

	CreateFunc func(ctx context.Context, u *user.User) error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[uint]*user.User), nextID: 1}
}

func (m *memoryUserRepository) add(email, hash string, role authorization.UserRole) *user.User {
	e, err := vo.NewEmail(email)
	if err != nil {
		panic(err)
	}
	n, err := vo.NewFullName("Test " + string(role))
	if err != nil {
		panic(err)
	}
	u, err := user.NewUser(e, n, hash, role)
	if err != nil {
		panic(err)
	}
	if err := m.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (m *memoryUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.users[u.ID()] = u
	return nil
}

func (m *memoryUserRepository) Update(ctx context.Context, u *user.User) error {
	m.users[u.ID()] = u
	return nil
}

func (m *memoryUserRepository) Delete(ctx context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		if filter.Role != "" && u.Role().String() != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive() != *filter.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	total := int64(len(out))
	start := filter.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit()
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// prefixHasher is reversible so tests can assert what was stored.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (prefixHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// fakeTokenService encodes "refresh:<id>" as a valid refresh token.
type fakeTokenService struct {
	issued []uint
}

func (f *fakeTokenService) Generate(userID uint, role authorization.UserRole) (*TokenPair, error) {
	f.issued = append(f.issued, userID)
	return &TokenPair{
		AccessToken:  fmt.Sprintf("access:%d:%s", userID, role),
		RefreshToken: fmt.Sprintf("refresh:%d", userID),
		ExpiresIn:    1800,
	}, nil
}

func (f *fakeTokenService) VerifyRefresh(token string) (uint, bool) {
	var id uint
	if _, err := fmt.Sscanf(token, "refresh:%d", &id); err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

type mockReferenceCounter struct {
	CountUserReferencesFunc func(ctx context.Context, userID uint) (int64, error)
}

func (m *mockReferenceCounter) CountUserReferences(ctx context.Context, userID uint) (int64, error) {
	if m.CountUserReferencesFunc != nil {
		return m.CountUserReferencesFunc(ctx, userID)
	}
	return 0, nil
}
