package http

import (
	"github.com/qreserve/qreserve/internal/interfaces/http/handlers"
	ticketHandlers "github.com/qreserve/qreserve/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler

	// User & Auth
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler

	categoryHandler *handlers.CategoryHandler

	// Ticket
	ticketHandler     *ticketHandlers.TicketHandler
	commentHandler    *ticketHandlers.CommentHandler
	attachmentHandler *ticketHandlers.AttachmentHandler
}

func (c *Container) initHandlers() error {
	u := c.ucs

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	ticketHandlers.RegisterValidators()

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(sqlDB, Version),

		authHandler: handlers.NewAuthHandler(
			u.registerUC, u.loginUC, u.refreshTokenUC, u.getProfileUC, u.updateProfileUC, c.log,
		),
		userHandler: handlers.NewUserHandler(
			u.listUsersUC, u.getUserUC, u.createUserUC, u.updateUserUC, u.deleteUserUC, c.log,
		),
		categoryHandler: handlers.NewCategoryHandler(
			u.createCategoryUC, u.listCategoriesUC, u.getCategoryUC, u.updateCategoryUC, u.deleteCategoryUC, c.log,
		),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC, u.listTicketsUC, u.getTicketUC, u.updateTicketUC, u.voteTicketUC, c.log,
		),
		commentHandler: ticketHandlers.NewCommentHandler(
			u.createCommentUC, u.listCommentsUC, u.getCommentUC, c.log,
		),
		attachmentHandler: ticketHandlers.NewAttachmentHandler(
			u.uploadAttachmentUC, u.listAttachmentsUC, u.downloadAttachmentUC, c.log,
		),
	}
	return nil
}
