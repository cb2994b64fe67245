package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/shared/authorization"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenService issues token pairs and resolves refresh tokens to a user id.
type TokenService interface {
	Generate(userID uint, role authorization.UserRole) (*TokenPair, error)
	VerifyRefresh(token string) (userID uint, ok bool)
}

// ReferenceCounter reports how many tickets, comments, votes and attachments
// point at a user.
type ReferenceCounter interface {
	CountUserReferences(ctx context.Context, userID uint) (int64, error)
}
