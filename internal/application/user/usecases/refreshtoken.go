package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	logger   logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.Repository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Execute issues a fresh pair. The role is re-read from the store so a role
// change takes effect at the next refresh.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.TokenDTO, error) {
	userID, ok := uc.tokens.VerifyRefresh(cmd.RefreshToken)
	if !ok {
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}

	existing, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if existing == nil || !existing.IsActive() {
		uc.logger.Warnw("refresh rejected for missing or inactive user", "user_id", userID)
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}

	pair, err := uc.tokens.Generate(existing.ID(), existing.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return toTokenDTO(pair), nil
}
