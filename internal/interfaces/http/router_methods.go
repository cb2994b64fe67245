package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/qreserve/qreserve/docs"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
	"github.com/qreserve/qreserve/internal/interfaces/http/routes"
)

// maxMultipartMemory bounds the part of an upload gin buffers in memory; the
// rest spills to temporary files.
const maxMultipartMemory = 8 << 20

// SetupRoutes configures all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.MaxMultipartMemory = maxMultipartMemory

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api/v1")
	api.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    c.hdlrs.userHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupCategoryRoutes(api, &routes.CategoryRouteConfig{
		CategoryHandler: c.hdlrs.categoryHandler,
		AuthMiddleware:  c.authMiddleware,
		Checker:         c.enforcer,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:     c.hdlrs.ticketHandler,
		CommentHandler:    c.hdlrs.commentHandler,
		AttachmentHandler: c.hdlrs.attachmentHandler,
		AuthMiddleware:    c.authMiddleware,
	})
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to 30 seconds.
func (c *Container) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Infow("server starting", "address", addr, "mode", c.cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	c.log.Infow("server exited gracefully")
	return nil
}
