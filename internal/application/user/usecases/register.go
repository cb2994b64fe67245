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

type RegisterCommand struct {
	Email    string
	Password string
	FullName string
}

type RegisterUseCase struct {
	userRepo  user.Repository
	hasher    PasswordHasher
	txManager db.Transactor
	logger    logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher PasswordHasher, txManager db.Transactor, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute creates an active end_user account.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserDTO, error) {
	u, err := createAccount(ctx, uc.userRepo, uc.hasher, uc.txManager, cmd.Email, cmd.Password, cmd.FullName, authorization.RoleEndUser)
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to register user", "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", u.ID())
	return dto.ToUserDTO(u), nil
}

func createAccount(
	ctx context.Context,
	repo user.Repository,
	hasher PasswordHasher,
	txManager db.Transactor,
	email, password, fullName string,
	role authorization.UserRole,
) (*user.User, error) {
	e, n, err := parseIdentity(email, fullName)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role != "" && !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := user.NewUser(e, n, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := ensureEmailFree(txCtx, repo, e, 0); err != nil {
			return err
		}
		return repo.Create(txCtx, u)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError("email already registered")
		}
		return nil, err
	}
	return u, nil
}
