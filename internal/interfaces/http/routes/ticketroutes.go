package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/qreserve/qreserve/internal/interfaces/http/handlers/ticket"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
)

// TicketRouteConfig holds dependencies for ticket, comment and attachment
// routes. Per-ticket access is decided in the use cases.
type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.TicketHandler
	CommentHandler    *tickethandlers.CommentHandler
	AttachmentHandler *tickethandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupTicketRoutes configures ticket routes.
func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.POST("/:id/vote", cfg.TicketHandler.VoteTicket)
		tickets.POST("/:id/attachments", cfg.AttachmentHandler.UploadAttachment)
		tickets.GET("/:id/attachments", cfg.AttachmentHandler.ListAttachments)
		tickets.GET("/:id/attachments/:attachment_id", cfg.AttachmentHandler.DownloadAttachment)

		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:id", cfg.TicketHandler.UpdateTicket)
	}

	comments := api.Group("/comments")
	comments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		comments.POST("", cfg.CommentHandler.CreateComment)
		comments.GET("/ticket/:id", cfg.CommentHandler.ListTicketComments)
		comments.GET("/:id", cfg.CommentHandler.GetComment)
	}
}
