package handlers

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/application/user/usecases"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, q usecases.ListUsersQuery) (*dto.ListUsersResult, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, q usecases.GetUserQuery) (*dto.UserDTO, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}

type updateUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error)
}

type deleteUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteUserCommand) error
}
