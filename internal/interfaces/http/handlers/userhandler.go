package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/user/usecases"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

// UserHandler serves the admin user management endpoints.
type UserHandler struct {
	listUsersUC  listUsersUseCase
	getUserUC    getUserUseCase
	createUserUC createUserUseCase
	updateUserUC updateUserUseCase
	deleteUserUC deleteUserUseCase
	logger       logger.Interface
}

func NewUserHandler(
	listUsersUC listUsersUseCase,
	getUserUC getUserUseCase,
	createUserUC createUserUseCase,
	updateUserUC updateUserUseCase,
	deleteUserUC deleteUserUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:  listUsersUC,
		getUserUC:    getUserUC,
		createUserUC: createUserUC,
		updateUserUC: updateUserUC,
		deleteUserUC: deleteUserUC,
		logger:       logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=end_user agent admin"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=end_user agent admin"`
	IsActive *bool   `json:"is_active"`
	DarkMode *bool   `json:"dark_mode"`
}

// ListUsers handles GET /users
//
//	@Summary		List users, newest first
//	@Tags			users
//	@Produce		json
//	@Security		Bearer
//	@Param			role		query		string	false	"Filter by role"
//	@Param			is_active	query		bool	false	"Filter by active flag"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	utils.APIResponse
//	@Failure		403			{object}	utils.APIResponse
//	@Router			/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListUsersQuery{
		ActorRole: role,
		Role:      c.Query("role"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("is_active must be a boolean"))
			return
		}
		query.IsActive = &active
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /users/:id
//
//	@Summary		Get a user
//	@Tags			users
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), usecases.GetUserQuery{
		ActorRole: role,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateUser handles POST /users
//
//	@Summary		Create a user with a role
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			body	body		CreateUserRequest	true	"User data"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse
//	@Router			/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		ActorRole: role,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User created successfully", result)
}

// UpdateUser handles PATCH /users/:id
//
//	@Summary		Update a user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"User ID"
//	@Param			body	body		UpdateUserRequest	true	"Changes"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		ActorRole: role,
		UserID:    userID,
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		Role:      req.Role,
		IsActive:  req.IsActive,
		DarkMode:  req.DarkMode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// DeleteUser handles DELETE /users/:id
//
//	@Summary		Delete a user
//	@Tags			users
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		400	{object}	utils.APIResponse	"Cannot delete yourself"
//	@Failure		409	{object}	utils.APIResponse	"User is referenced by tickets"
//	@Router			/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUserUC.Execute(c.Request.Context(), usecases.DeleteUserCommand{
		ActorID:   actorID,
		ActorRole: role,
		UserID:    userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}
