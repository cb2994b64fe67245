package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type CreateUserCommand struct {
	ActorRole authorization.UserRole
	Email     string
	Password  string
	FullName  string
	Role      string
}

type CreateUserUseCase struct {
	userRepo  user.Repository
	hasher    PasswordHasher
	txManager db.Transactor
	logger    logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher PasswordHasher, txManager db.Transactor, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CapUserManage) {
		return nil, errors.NewForbiddenError("not authorized to manage users")
	}

	u, err := createAccount(ctx, uc.userRepo, uc.hasher, uc.txManager,
		cmd.Email, cmd.Password, cmd.FullName, authorization.UserRole(cmd.Role))
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to create user", "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("user created by admin", "user_id", u.ID(), "role", u.Role())
	return dto.ToUserDTO(u), nil
}
