package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type GetProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, userID, uc.logger)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

type UpdateProfileCommand struct {
	UserID      uint
	FullName    *string
	Password    *string
	DarkMode    *bool
	Preferences map[string]interface{}
}

type UpdateProfileUseCase struct {
	userRepo  user.Repository
	hasher    PasswordHasher
	txManager db.Transactor
	logger    logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, hasher PasswordHasher, txManager db.Transactor, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute lets users edit their own name, password and preferences. Role,
// email and activation are admin-only.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}

	if cmd.FullName != nil {
		name, err := vo.NewFullName(*cmd.FullName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		u.Rename(name)
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
	if cmd.DarkMode != nil || cmd.Preferences != nil {
		u.UpdatePreferences(mergePreferences(u.Preferences(), cmd.Preferences, cmd.DarkMode))
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.userRepo.Update(txCtx, u)
	})
	if err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", u.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("profile updated", "user_id", u.ID(), "password_changed", cmd.Password != nil)
	return dto.ToUserDTO(u), nil
}
