package handlers

import (
	"context"

	categorydto "github.com/qreserve/qreserve/internal/application/category/dto"
	categoryusecases "github.com/qreserve/qreserve/internal/application/category/usecases"
	"github.com/qreserve/qreserve/internal/application/user/dto"
	"github.com/qreserve/qreserve/internal/application/user/usecases"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

func init() {
	utils.RegisterGinValidators()
}

// =====================================================================
// Auth and profile use cases
// =====================================================================

type mockRegisterUC struct {
	result *dto.UserDTO
	err    error
	got    usecases.RegisterCommand
}

func (m *mockRegisterUC) Execute(_ context.Context, cmd usecases.RegisterCommand) (*dto.UserDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	result *dto.TokenDTO
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ usecases.LoginCommand) (*dto.TokenDTO, error) {
	return m.result, m.err
}

type mockRefreshTokenUC struct {
	result *dto.TokenDTO
	err    error
	got    usecases.RefreshTokenCommand
}

func (m *mockRefreshTokenUC) Execute(_ context.Context, cmd usecases.RefreshTokenCommand) (*dto.TokenDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetProfileUC struct {
	result *dto.UserDTO
	err    error
	gotID  uint
}

func (m *mockGetProfileUC) Execute(_ context.Context, userID uint) (*dto.UserDTO, error) {
	m.gotID = userID
	return m.result, m.err
}

type mockUpdateProfileUC struct {
	result *dto.UserDTO
	err    error
	got    usecases.UpdateProfileCommand
}

func (m *mockUpdateProfileUC) Execute(_ context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserDTO, error) {
	m.got = cmd
	return m.result, m.err
}

// =====================================================================
// Admin user use cases
// =====================================================================

type mockListUsersUC struct {
	result *dto.ListUsersResult
	err    error
	got    usecases.ListUsersQuery
}

func (m *mockListUsersUC) Execute(_ context.Context, q usecases.ListUsersQuery) (*dto.ListUsersResult, error) {
	m.got = q
	return m.result, m.err
}

type mockGetUserUC struct {
	result *dto.UserDTO
	err    error
}

func (m *mockGetUserUC) Execute(_ context.Context, _ usecases.GetUserQuery) (*dto.UserDTO, error) {
	return m.result, m.err
}

type mockCreateUserUC struct {
	result *dto.UserDTO
	err    error
	got    usecases.CreateUserCommand
}

func (m *mockCreateUserUC) Execute(_ context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateUserUC struct {
	result *dto.UserDTO
	err    error
	got    usecases.UpdateUserCommand
}

func (m *mockUpdateUserUC) Execute(_ context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteUserUC struct {
	err error
	got usecases.DeleteUserCommand
}

func (m *mockDeleteUserUC) Execute(_ context.Context, cmd usecases.DeleteUserCommand) error {
	m.got = cmd
	return m.err
}

// =====================================================================
// Category use cases
// =====================================================================

type mockCreateCategoryUC struct {
	result *categorydto.CategoryDTO
	err    error
	got    categoryusecases.CreateCategoryCommand
}

func (m *mockCreateCategoryUC) Execute(_ context.Context, cmd categoryusecases.CreateCategoryCommand) (*categorydto.CategoryDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListCategoriesUC struct {
	result []*categorydto.CategoryDTO
	err    error
	got    categoryusecases.ListCategoriesQuery
}

func (m *mockListCategoriesUC) Execute(_ context.Context, q categoryusecases.ListCategoriesQuery) ([]*categorydto.CategoryDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockGetCategoryUC struct {
	result *categorydto.CategoryDTO
	err    error
}

func (m *mockGetCategoryUC) Execute(_ context.Context, _ uint) (*categorydto.CategoryDTO, error) {
	return m.result, m.err
}

type mockUpdateCategoryUC struct {
	result *categorydto.CategoryDTO
	err    error
	got    categoryusecases.UpdateCategoryCommand
}

func (m *mockUpdateCategoryUC) Execute(_ context.Context, cmd categoryusecases.UpdateCategoryCommand) (*categorydto.CategoryDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteCategoryUC struct {
	err error
}

func (m *mockDeleteCategoryUC) Execute(_ context.Context, _ categoryusecases.DeleteCategoryCommand) error {
	return m.err
}
