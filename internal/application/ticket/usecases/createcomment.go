package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type CreateCommentCommand struct {
	Actor    Actor
	TicketID uint
	ParentID *uint
	Content  string
}

type CreateCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	txManager   db.Transactor
	dispatcher  notification.Dispatcher
	assembler   *ticketAssembler
	logger      logger.Interface
}

func NewCreateCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	txManager db.Transactor,
	dispatcher notification.Dispatcher,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *CreateCommentUseCase {
	return &CreateCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		assembler: &ticketAssembler{
			ticketRepo:   ticketRepo,
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			renderer:     renderer,
		},
		logger: logger,
	}
}

func (uc *CreateCommentUseCase) Execute(ctx context.Context, cmd CreateCommentCommand) (*dto.CommentDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.Actor.Role, authorization.CapCommentCreate) || !canReadTicket(cmd.Actor, t) {
		uc.logger.Warnw("comment creation denied", "ticket_id", t.ID(), "user_id", cmd.Actor.UserID)
		return nil, errors.NewForbiddenError("not authorized to comment on this ticket")
	}

	var parent *ticket.Comment
	if cmd.ParentID != nil {
		parent, err = uc.commentRepo.GetByID(ctx, *cmd.ParentID)
		if err != nil {
			uc.logger.Errorw("failed to get parent comment", "parent_id", *cmd.ParentID, "error", err)
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent == nil {
			return nil, errors.NewValidationError("parent comment not found")
		}
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Content, parent)
	if err != nil {
		if stderrors.Is(err, ticket.ErrParentOnOtherTicket) {
			return nil, errors.NewValidationError("parent comment must belong to the same ticket")
		}
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}
		t.RecordActivity()
		return uc.ticketRepo.Update(txCtx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to create comment", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("comment created successfully",
		"comment_id", comment.ID(),
		"ticket_id", t.ID(),
		"author_id", cmd.Actor.UserID,
		"is_reply", comment.IsReply(),
	)

	// The comment is committed; a failed author lookup only drops the summary.
	authors, err := uc.assembler.userSummaries(ctx, []uint{cmd.Actor.UserID, t.OwnerID()})
	if err != nil {
		uc.logger.Warnw("comment saved without author details", "comment_id", comment.ID(), "error", err)
		authors = map[uint]*dto.UserSummaryDTO{}
	}

	if !t.IsOwnedBy(cmd.Actor.UserID) {
		uc.notifyOwner(ctx, t, authors[cmd.Actor.UserID])
	}

	return uc.assembler.commentDTO(comment, authors), nil
}

func (uc *CreateCommentUseCase) notifyOwner(ctx context.Context, t *ticket.Ticket, commenter *dto.UserSummaryDTO) {
	owner, err := uc.userRepo.GetByID(ctx, t.OwnerID())
	if err != nil || owner == nil {
		uc.logger.Warnw("skipping comment notification, owner not loaded", "ticket_id", t.ID(), "error", err)
		return
	}
	commenterName := ""
	if commenter != nil {
		commenterName = commenter.FullName
	}
	uc.dispatcher.Dispatch(ctx, notification.NewCommentCreated(
		owner.Email().String(),
		owner.FullName().String(),
		t.ID(),
		t.Subject(),
		commenterName,
	))
}
