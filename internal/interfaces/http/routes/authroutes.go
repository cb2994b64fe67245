package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/interfaces/http/handlers"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit("register"), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.RateLimiter.Limit("login"), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)

		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
		auth.PATCH("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.UpdateCurrentUser)
	}
}
