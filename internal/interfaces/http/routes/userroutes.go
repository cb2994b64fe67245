package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/interfaces/http/handlers"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
	"github.com/qreserve/qreserve/internal/shared/authorization"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures admin user management routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireRole(authorization.RoleAdmin))
	{
		users.POST("", cfg.UserHandler.CreateUser)
		users.GET("", cfg.UserHandler.ListUsers)

		users.GET("/:id", cfg.UserHandler.GetUser)
		users.PATCH("/:id", cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", cfg.UserHandler.DeleteUser)
	}
}
