package http

import (
	categoryUsecases "github.com/qreserve/qreserve/internal/application/category/usecases"
	notificationUsecases "github.com/qreserve/qreserve/internal/application/notification/usecases"
	ticketUsecases "github.com/qreserve/qreserve/internal/application/ticket/usecases"
	userUsecases "github.com/qreserve/qreserve/internal/application/user/usecases"
	"github.com/qreserve/qreserve/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Auth & profile
	registerUC      *userUsecases.RegisterUseCase
	loginUC         *userUsecases.LoginUseCase
	refreshTokenUC  *userUsecases.RefreshTokenUseCase
	getProfileUC    *userUsecases.GetProfileUseCase
	updateProfileUC *userUsecases.UpdateProfileUseCase

	// User management
	listUsersUC  *userUsecases.ListUsersUseCase
	getUserUC    *userUsecases.GetUserUseCase
	createUserUC *userUsecases.CreateUserUseCase
	updateUserUC *userUsecases.UpdateUserUseCase
	deleteUserUC *userUsecases.DeleteUserUseCase

	// Category
	createCategoryUC *categoryUsecases.CreateCategoryUseCase
	listCategoriesUC *categoryUsecases.ListCategoriesUseCase
	getCategoryUC    *categoryUsecases.GetCategoryUseCase
	updateCategoryUC *categoryUsecases.UpdateCategoryUseCase
	deleteCategoryUC *categoryUsecases.DeleteCategoryUseCase

	// Ticket
	createTicketUC *ticketUsecases.CreateTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	updateTicketUC *ticketUsecases.UpdateTicketUseCase
	voteTicketUC   *ticketUsecases.VoteTicketUseCase

	// Comment
	createCommentUC *ticketUsecases.CreateCommentUseCase
	listCommentsUC  *ticketUsecases.ListTicketCommentsUseCase
	getCommentUC    *ticketUsecases.GetCommentUseCase

	// Attachment
	uploadAttachmentUC   *ticketUsecases.UploadAttachmentUseCase
	listAttachmentsUC    *ticketUsecases.ListAttachmentsUseCase
	downloadAttachmentUC *ticketUsecases.DownloadAttachmentUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	tokens := &tokenServiceAdapter{c.jwtSvc}
	renderer := markdown.NewRenderer()
	dispatcher := notificationUsecases.NewQueueDispatcher(c.publisher, c.log)

	c.ucs = &allUseCases{
		registerUC:      userUsecases.NewRegisterUseCase(r.userRepo, c.hasher, r.txManager, c.log),
		loginUC:         userUsecases.NewLoginUseCase(r.userRepo, c.hasher, tokens, c.log),
		refreshTokenUC:  userUsecases.NewRefreshTokenUseCase(r.userRepo, tokens, c.log),
		getProfileUC:    userUsecases.NewGetProfileUseCase(r.userRepo, c.log),
		updateProfileUC: userUsecases.NewUpdateProfileUseCase(r.userRepo, c.hasher, r.txManager, c.log),

		listUsersUC:  userUsecases.NewListUsersUseCase(r.userRepo, c.log),
		getUserUC:    userUsecases.NewGetUserUseCase(r.userRepo, c.log),
		createUserUC: userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, r.txManager, c.log),
		updateUserUC: userUsecases.NewUpdateUserUseCase(r.userRepo, c.hasher, r.txManager, c.log),
		deleteUserUC: userUsecases.NewDeleteUserUseCase(r.userRepo, r.userRefs, r.txManager, c.log),

		createCategoryUC: categoryUsecases.NewCreateCategoryUseCase(r.categoryRepo, r.txManager, c.log),
		listCategoriesUC: categoryUsecases.NewListCategoriesUseCase(r.categoryRepo, c.log),
		getCategoryUC:    categoryUsecases.NewGetCategoryUseCase(r.categoryRepo, c.log),
		updateCategoryUC: categoryUsecases.NewUpdateCategoryUseCase(r.categoryRepo, r.txManager, c.log),
		deleteCategoryUC: categoryUsecases.NewDeleteCategoryUseCase(r.categoryRepo, r.ticketRepo, r.txManager, c.log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.categoryRepo, r.userRepo, r.txManager, dispatcher, renderer, c.log,
		),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(
			r.ticketRepo, r.userRepo, r.categoryRepo, renderer, c.log,
		),
		getTicketUC: ticketUsecases.NewGetTicketUseCase(
			r.ticketRepo, r.voteRepo, r.userRepo, r.categoryRepo, renderer, c.log,
		),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo, r.voteRepo, r.userRepo, r.categoryRepo, r.txManager, dispatcher, renderer, c.log,
		),
		voteTicketUC: ticketUsecases.NewVoteTicketUseCase(r.ticketRepo, r.voteRepo, r.txManager, c.log),

		createCommentUC: ticketUsecases.NewCreateCommentUseCase(
			r.ticketRepo, r.commentRepo, r.userRepo, r.categoryRepo, r.txManager, dispatcher, renderer, c.log,
		),
		listCommentsUC: ticketUsecases.NewListTicketCommentsUseCase(
			r.ticketRepo, r.commentRepo, r.userRepo, r.categoryRepo, renderer, c.log,
		),
		getCommentUC: ticketUsecases.NewGetCommentUseCase(
			r.ticketRepo, r.commentRepo, r.userRepo, r.categoryRepo, renderer, c.log,
		),

		uploadAttachmentUC: ticketUsecases.NewUploadAttachmentUseCase(
			r.ticketRepo, r.attachmentRepo, c.fileStore, c.cfg.Upload, r.txManager, c.log,
		),
		listAttachmentsUC:    ticketUsecases.NewListAttachmentsUseCase(r.ticketRepo, r.attachmentRepo, c.log),
		downloadAttachmentUC: ticketUsecases.NewDownloadAttachmentUseCase(r.ticketRepo, r.attachmentRepo, c.fileStore, c.log),
	}
}
