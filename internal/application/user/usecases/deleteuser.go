package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type DeleteUserCommand struct {
	ActorID   uint
	ActorRole authorization.UserRole
	UserID    uint
}

type DeleteUserUseCase struct {
	userRepo  user.Repository
	refs      ReferenceCounter
	txManager db.Transactor
	logger    logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, refs ReferenceCounter, txManager db.Transactor, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:  userRepo,
		refs:      refs,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return err
	}
	if !authorization.Can(cmd.ActorRole, authorization.CapUserManage) {
		return errors.NewForbiddenError("not authorized to manage users")
	}
	if u.ID() == cmd.ActorID {
		return errors.NewBadRequestError("cannot delete your own account")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		count, err := uc.refs.CountUserReferences(txCtx, u.ID())
		if err != nil {
			return fmt.Errorf("failed to count user references: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError("user is still referenced",
				fmt.Sprintf("%d ticket(s), comment(s), vote(s) or attachment(s) reference this user", count))
		}
		return uc.userRepo.Delete(txCtx, u.ID())
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to delete user", "user_id", u.ID(), "error", err)
		}
		return err
	}

	uc.logger.Infow("user deleted", "user_id", u.ID(), "deleted_by", cmd.ActorID)
	return nil
}
