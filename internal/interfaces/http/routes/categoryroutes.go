package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/interfaces/http/handlers"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
	"github.com/qreserve/qreserve/internal/shared/authorization"
)

// CategoryRouteConfig holds dependencies for category routes.
type CategoryRouteConfig struct {
	CategoryHandler *handlers.CategoryHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Checker         authorization.Checker
}

// SetupCategoryRoutes configures category routes. Reads are public; an
// optional token lets admins see inactive categories.
func SetupCategoryRoutes(api *gin.RouterGroup, cfg *CategoryRouteConfig) {
	categories := api.Group("/categories")
	{
		categories.GET("", cfg.AuthMiddleware.OptionalAuth(), cfg.CategoryHandler.ListCategories)
		categories.GET("/:id", cfg.CategoryHandler.GetCategory)

		manage := categories.Group("")
		manage.Use(
			cfg.AuthMiddleware.RequireAuth(),
			authorization.RequireCapability(cfg.Checker, authorization.CapCategoryManage),
		)
		manage.POST("", cfg.CategoryHandler.CreateCategory)
		manage.PATCH("/:id", cfg.CategoryHandler.UpdateCategory)
		manage.DELETE("/:id", cfg.CategoryHandler.DeleteCategory)
	}
}
