package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type UpdateUserCommand struct {
	ActorRole authorization.UserRole
	UserID    uint
	Email     *string
	FullName  *string
	Password  *string
	Role      *string
	IsActive  *bool
	DarkMode  *bool
}

type UpdateUserUseCase struct {
	userRepo  user.Repository
	hasher    PasswordHasher
	txManager db.Transactor
	logger    logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, hasher PasswordHasher, txManager db.Transactor, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.ActorRole, authorization.CapUserManage) {
		return nil, errors.NewForbiddenError("not authorized to manage users")
	}

	var newEmail *vo.Email
	if cmd.Email != nil {
		e, err := vo.NewEmail(*cmd.Email)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		newEmail = &e
	}
	if cmd.FullName != nil {
		name, err := vo.NewFullName(*cmd.FullName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		u.Rename(name)
	}
	if cmd.Role != nil {
		if err := u.ChangeRole(authorization.UserRole(*cmd.Role)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.IsActive != nil {
		if *cmd.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}
	if cmd.DarkMode != nil {
		u.UpdatePreferences(mergePreferences(u.Preferences(), nil, cmd.DarkMode))
	}
	if cmd.Password != nil {
		if err := validatePassword(*cmd.Password); err != nil {
			return nil, err
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			return nil, err
		}
		if err := u.ChangePassword(hash); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if newEmail != nil {
			if err := ensureEmailFree(txCtx, uc.userRepo, *newEmail, u.ID()); err != nil {
				return err
			}
			u.ChangeEmail(*newEmail)
		}
		return uc.userRepo.Update(txCtx, u)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError("email already registered")
		}
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("user updated by admin", "user_id", u.ID(), "role", u.Role(), "is_active", u.IsActive())
	return dto.ToUserDTO(u), nil
}
