package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/user/usecases"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase      registerUseCase
	loginUseCase         loginUseCase
	refreshTokenUseCase  refreshTokenUseCase
	getProfileUseCase    getProfileUseCase
	updateProfileUseCase updateProfileUseCase
	logger               logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	getProfileUC getProfileUseCase,
	updateProfileUC updateProfileUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:      registerUC,
		loginUseCase:         loginUC,
		refreshTokenUseCase:  refreshTokenUC,
		getProfileUseCase:    getProfileUC,
		updateProfileUseCase: updateProfileUC,
		logger:               logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	FullName    *string                `json:"full_name" binding:"omitempty,max=100"`
	Password    *string                `json:"password" binding:"omitempty,min=8,max=72"`
	DarkMode    *bool                  `json:"dark_mode"`
	Preferences map[string]interface{} `json:"preferences"`
}

// Register handles POST /auth/register
//
//	@Summary		Register a new account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RegisterRequest		true	"Registration data"
//	@Success		200		{object}	utils.APIResponse	"Registered user"
//	@Failure		400		{object}	utils.APIResponse	"Validation error or email already registered"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Registration successful", result)
}

// Login handles POST /auth/login
//
//	@Summary		Log in with email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest		true	"Credentials"
//	@Success		200		{object}	utils.APIResponse	"Token pair"
//	@Failure		401		{object}	utils.APIResponse	"Incorrect email or password"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RefreshToken handles POST /auth/refresh. The token may be sent in the JSON
// body or as the refresh_token query parameter.
//
//	@Summary		Exchange a refresh token for a new token pair
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body			body		RefreshTokenRequest	false	"Refresh token"
//	@Param			refresh_token	query		string				false	"Refresh token"
//	@Success		200				{object}	utils.APIResponse	"Token pair"
//	@Failure		401				{object}	utils.APIResponse	"Invalid refresh token"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Query("refresh_token")
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCurrentUser handles GET /auth/me
//
//	@Summary		Current user profile
//	@Tags			auth
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse	"Profile"
//	@Failure		401	{object}	utils.APIResponse	"Unauthorized"
//	@Router			/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getProfileUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateCurrentUser handles PATCH /auth/me
//
//	@Summary		Update own profile and preferences
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			body	body		UpdateProfileRequest	true	"Profile changes"
//	@Success		200		{object}	utils.APIResponse		"Updated profile"
//	@Failure		400		{object}	utils.APIResponse		"Validation error"
//	@Router			/auth/me [patch]
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	userID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.updateProfileUseCase.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		UserID:      userID,
		FullName:    req.FullName,
		Password:    req.Password,
		DarkMode:    req.DarkMode,
		Preferences: req.Preferences,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}
