package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	voteRepo   ticket.VoteRepository
	assembler  *ticketAssembler
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	voteRepo ticket.VoteRepository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
		assembler: &ticketAssembler{
			ticketRepo:   ticketRepo,
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			renderer:     renderer,
		},
		logger: logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, q GetTicketQuery) (*dto.TicketDetailDTO, error) {
	t, err := loadReadableTicket(ctx, uc.ticketRepo, q.Actor, q.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	return ticketDetail(ctx, uc.assembler, uc.voteRepo, t, q.Actor.UserID)
}

// ticketDetail assembles t and attaches userID's vote.
func ticketDetail(ctx context.Context, a *ticketAssembler, voteRepo ticket.VoteRepository, t *ticket.Ticket, userID uint) (*dto.TicketDetailDTO, error) {
	base, err := a.assembleOne(ctx, t)
	if err != nil {
		return nil, err
	}

	vote, err := voteRepo.GetByTicketAndUser(ctx, t.ID(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user vote: %w", err)
	}

	detail := &dto.TicketDetailDTO{TicketDTO: base}
	if vote != nil {
		v := vote.Type().String()
		detail.UserVote = &v
	}
	return detail, nil
}
