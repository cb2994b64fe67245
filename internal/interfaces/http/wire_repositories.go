package http

import (
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/infrastructure/repository"
	"github.com/qreserve/qreserve/internal/shared/db"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo       user.Repository
	categoryRepo   category.Repository
	ticketRepo     ticket.Repository
	commentRepo    ticket.CommentRepository
	voteRepo       ticket.VoteRepository
	attachmentRepo ticket.AttachmentRepository
	userRefs       *repository.UserReferenceCounter
	txManager      db.Transactor
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		userRepo:       repository.NewUserRepository(c.db, c.log),
		categoryRepo:   repository.NewCategoryRepository(c.db, c.log),
		ticketRepo:     repository.NewTicketRepository(c.db, c.log),
		commentRepo:    repository.NewCommentRepository(c.db, c.log),
		voteRepo:       repository.NewVoteRepository(c.db, c.log),
		attachmentRepo: repository.NewAttachmentRepository(c.db, c.log),
		userRefs:       repository.NewUserReferenceCounter(c.db),
		txManager:      db.NewTransactionManager(c.db),
	}
}
