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

type ListTicketCommentsQuery struct {
	Actor    Actor
	TicketID uint
}

type ListTicketCommentsUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	assembler   *ticketAssembler
	logger      logger.Interface
}

func NewListTicketCommentsUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *ListTicketCommentsUseCase {
	return &ListTicketCommentsUseCase{
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

// Execute returns top-level comments ordered by creation time with replies
// nested under their parents.
func (uc *ListTicketCommentsUseCase) Execute(ctx context.Context, q ListTicketCommentsQuery) ([]*dto.CommentDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, q.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !canReadComments(q.Actor, t) {
		return nil, errors.NewForbiddenError("not authorized to view comments on this ticket")
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return uc.assembler.commentTree(ctx, comments)
}
