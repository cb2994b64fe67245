package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type VoteTicketCommand struct {
	Actor    Actor
	TicketID uint
	VoteType string
}

type VoteTicketUseCase struct {
	ticketRepo ticket.Repository
	voteRepo   ticket.VoteRepository
	txManager  db.Transactor
	logger     logger.Interface
}

func NewVoteTicketUseCase(
	ticketRepo ticket.Repository,
	voteRepo ticket.VoteRepository,
	txManager db.Transactor,
	logger logger.Interface,
) *VoteTicketUseCase {
	return &VoteTicketUseCase{
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute toggles the caller's vote: same type again removes it, the
// opposite type replaces it. A concurrent duplicate first vote surfaces as a
// conflict from the unique index. Any user may vote on any existing ticket,
// including tickets they cannot otherwise read.
func (uc *VoteTicketUseCase) Execute(ctx context.Context, cmd VoteTicketCommand) (*dto.VoteResultDTO, error) {
	voteType, err := vo.NewVoteType(cmd.VoteType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.Actor.Role, authorization.CapVoteCreate) {
		return nil, errors.NewForbiddenError("not authorized to vote")
	}

	var (
		action ticket.VoteAction
		score  int64
		result *ticket.Vote
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.voteRepo.GetByTicketAndUser(txCtx, t.ID(), cmd.Actor.UserID)
		if err != nil {
			return err
		}

		v, a, err := ticket.CastVote(existing, t.ID(), cmd.Actor.UserID, voteType)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		action = a

		switch a {
		case ticket.VoteActionCreate:
			err = uc.voteRepo.Create(txCtx, v)
			result = v
		case ticket.VoteActionSwitch:
			err = uc.voteRepo.Update(txCtx, v)
			result = v
		case ticket.VoteActionRemove:
			err = uc.voteRepo.Delete(txCtx, v.ID())
		}
		if err != nil {
			return err
		}

		score, err = uc.voteRepo.Score(txCtx, t.ID())
		return err
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to record vote", "ticket_id", t.ID(), "user_id", cmd.Actor.UserID, "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("vote recorded",
		"ticket_id", t.ID(),
		"user_id", cmd.Actor.UserID,
		"action", action.String(),
		"vote_score", score,
	)

	out := &dto.VoteResultDTO{
		TicketID:  t.ID(),
		Action:    action.String(),
		VoteScore: score,
	}
	if result != nil {
		v := result.Type().String()
		out.UserVote = &v
	}
	return out, nil
}
