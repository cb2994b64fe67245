package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/mapper"
	"github.com/qreserve/qreserve/internal/shared/query"
)

type ListUsersQuery struct {
	ActorRole authorization.UserRole
	Role      string
	IsActive  *bool
	Page      int
	PageSize  int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

// Execute returns users newest first.
func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*dto.ListUsersResult, error) {
	if !authorization.Can(q.ActorRole, authorization.CapUserManage) {
		return nil, errors.NewForbiddenError("not authorized to manage users")
	}
	if q.Role != "" && !authorization.UserRole(q.Role).IsValid() {
		return nil, errors.NewValidationError("invalid role filter")
	}

	page, pageSize := q.Page, q.PageSize
	if page == 0 {
		page = constants.DefaultPage
	}
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}
	if page < 1 || pageSize < 1 || pageSize > constants.MaxPageSize {
		return nil, errors.NewValidationError("invalid pagination parameters")
	}

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{
		PageFilter: query.PageFilter{Page: page, PageSize: pageSize},
		Role:       q.Role,
		IsActive:   q.IsActive,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &dto.ListUsersResult{
		Users:    mapper.MapSlice(users, dto.ToUserDTO),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

type GetUserQuery struct {
	ActorRole authorization.UserRole
	UserID    uint
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, q GetUserQuery) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, q.UserID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(q.ActorRole, authorization.CapUserManage) {
		return nil, errors.NewForbiddenError("not authorized to manage users")
	}
	return dto.ToUserDTO(u), nil
}
