package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/category/dto"
	"github.com/qreserve/qreserve/internal/application/category/usecases"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

type createCategoryUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCategoryCommand) (*dto.CategoryDTO, error)
}

type listCategoriesUseCase interface {
	Execute(ctx context.Context, q usecases.ListCategoriesQuery) ([]*dto.CategoryDTO, error)
}

type getCategoryUseCase interface {
	Execute(ctx context.Context, id uint) (*dto.CategoryDTO, error)
}

type updateCategoryUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateCategoryCommand) (*dto.CategoryDTO, error)
}

type deleteCategoryUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteCategoryCommand) error
}

type CategoryHandler struct {
	createUC createCategoryUseCase
	listUC   listCategoriesUseCase
	getUC    getCategoryUseCase
	updateUC updateCategoryUseCase
	deleteUC deleteCategoryUseCase
	logger   logger.Interface
}

func NewCategoryHandler(
	createUC createCategoryUseCase,
	listUC listCategoriesUseCase,
	getUC getCategoryUseCase,
	updateUC updateCategoryUseCase,
	deleteUC deleteCategoryUseCase,
	logger logger.Interface,
) *CategoryHandler {
	return &CategoryHandler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// CreateCategory handles POST /categories
//
//	@Summary		Create a category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			body	body		CreateCategoryRequest	true	"Category"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse	"Name already exists"
//	@Router			/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateCategoryCommand{
		Role:        role,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category created successfully", result)
}

// ListCategories handles GET /categories. Anonymous callers are allowed.
//
//	@Summary		List categories ordered by name
//	@Tags			categories
//	@Produce		json
//	@Param			include_inactive	query		bool	false	"Include inactive categories (admins only)"
//	@Success		200					{object}	utils.APIResponse
//	@Router			/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	query := usecases.ListCategoriesQuery{
		Role: authorization.RoleFromContext(c),
	}
	if raw := c.Query("include_inactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("include_inactive must be a boolean"))
			return
		}
		query.IncludeInactive = include
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCategory handles GET /categories/:id
//
//	@Summary		Get a category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"Category ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateCategory handles PATCH /categories/:id
//
//	@Summary		Update a category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int						true	"Category ID"
//	@Param			body	body		UpdateCategoryRequest	true	"Changes"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse
//	@Router			/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := utils.ParseIDParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateCategoryCommand{
		Role:        role,
		CategoryID:  id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category updated successfully", result)
}

// DeleteCategory handles DELETE /categories/:id
//
//	@Summary		Delete a category
//	@Tags			categories
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Category ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		409	{object}	utils.APIResponse	"Category is used by tickets"
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	_, role, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := utils.ParseIDParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteCategoryCommand{
		Role:       role,
		CategoryID: id,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
}
