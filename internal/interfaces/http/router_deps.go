package http

import (
	"github.com/qreserve/qreserve/internal/application/user/usecases"
	"github.com/qreserve/qreserve/internal/infrastructure/auth"
	"github.com/qreserve/qreserve/internal/shared/authorization"
)

// tokenServiceAdapter adapts auth.JWTService to usecases.TokenService.
type tokenServiceAdapter struct {
	*auth.JWTService
}

var _ usecases.TokenService = (*tokenServiceAdapter)(nil)

func (a *tokenServiceAdapter) Generate(userID uint, role authorization.UserRole) (*usecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userID, role)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// VerifyRefresh accepts only refresh tokens. The role inside is ignored;
// callers re-read it from the user record.
func (a *tokenServiceAdapter) VerifyRefresh(token string) (uint, bool) {
	claims, ok := a.JWTService.VerifyType(token, auth.TokenTypeRefresh)
	if !ok {
		return 0, false
	}
	userID := claims.UserID()
	return userID, userID != 0
}
