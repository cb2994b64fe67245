package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Execute answers every credential failure with the same 401 so callers
// cannot discover which emails exist.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenDTO, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if err := uc.hasher.Verify(cmd.Password, existing.HashedPassword()); err != nil {
		uc.logger.Warnw("login failed", "user_id", existing.ID())
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if !existing.IsActive() {
		return nil, errors.NewUnauthorizedError("account is inactive")
	}

	pair, err := uc.tokens.Generate(existing.ID(), existing.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("user logged in successfully", "user_id", existing.ID())
	return toTokenDTO(pair), nil
}

func toTokenDTO(pair *TokenPair) *dto.TokenDTO {
	return &dto.TokenDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
	}
}
