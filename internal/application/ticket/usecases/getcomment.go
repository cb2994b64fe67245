package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type GetCommentQuery struct {
	Actor     Actor
	CommentID uint
}

type GetCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	assembler   *ticketAssembler
	logger      logger.Interface
}

func NewGetCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *GetCommentUseCase {
	return &GetCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		assembler: &ticketAssembler{
			ticketRepo:   ticketRepo,
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			renderer:     renderer,
		},
		logger: logger,
	}
}

func (uc *GetCommentUseCase) Execute(ctx context.Context, q GetCommentQuery) (*dto.CommentDTO, error) {
	comment, err := uc.commentRepo.GetByID(ctx, q.CommentID)
	if err != nil {
		uc.logger.Errorw("failed to get comment", "comment_id", q.CommentID, "error", err)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, errors.NewNotFoundError("comment not found")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, comment.TicketID(), uc.logger)
	if err != nil {
		return nil, err
	}
	if !canReadComments(q.Actor, t) {
		return nil, errors.NewForbiddenError("not authorized to view this comment")
	}

	authors, err := uc.assembler.userSummaries(ctx, []uint{comment.AuthorID()})
	if err != nil {
		return nil, err
	}
	return uc.assembler.commentDTO(comment, authors), nil
}
