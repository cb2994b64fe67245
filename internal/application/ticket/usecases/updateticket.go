package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// UpdateTicketCommand is a partial update: nil fields are left alone. A
// CategoryID or AssigneeID of 0 clears the reference.
type UpdateTicketCommand struct {
	Actor       Actor
	TicketID    uint
	Subject     *string
	Description *string
	Status      *string
	Priority    *string
	CategoryID  *uint
	AssigneeID  *uint
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.Repository
	voteRepo     ticket.VoteRepository
	userRepo     user.Repository
	categoryRepo category.Repository
	txManager    db.Transactor
	dispatcher   notification.Dispatcher
	assembler    *ticketAssembler
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	voteRepo ticket.VoteRepository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	txManager db.Transactor,
	dispatcher notification.Dispatcher,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		voteRepo:     voteRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		dispatcher:   dispatcher,
		assembler: &ticketAssembler{
			ticketRepo:   ticketRepo,
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			renderer:     renderer,
		},
		logger: logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDetailDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.Actor.Role, authorization.CapTicketUpdate) {
		uc.logger.Warnw("ticket update denied", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)
		return nil, errors.NewForbiddenError("not authorized to update tickets")
	}

	statusChanged, err := uc.apply(ctx, t, cmd)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Update(txCtx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", t.ID(),
		"updated_by", cmd.Actor.UserID,
		"status_changed", statusChanged,
	)

	if statusChanged {
		uc.notifyStatusChange(ctx, t)
	}

	detail, err := ticketDetail(ctx, uc.assembler, uc.voteRepo, t, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Warnw("ticket updated without related details", "ticket_id", t.ID(), "error", err)
		return &dto.TicketDetailDTO{TicketDTO: uc.assembler.bareTicket(t)}, nil
	}
	return detail, nil
}

// apply validates and applies every requested change. Nothing is persisted
// when one of them is rejected.
func (uc *UpdateTicketUseCase) apply(ctx context.Context, t *ticket.Ticket, cmd UpdateTicketCommand) (bool, error) {
	if cmd.Subject != nil {
		if err := t.ChangeSubject(*cmd.Subject); err != nil {
			return false, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := t.ChangeDescription(*cmd.Description); err != nil {
			return false, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return false, errors.NewValidationError(err.Error())
		}
		if err := t.ChangePriority(priority); err != nil {
			return false, errors.NewValidationError(err.Error())
		}
	}

	if cmd.CategoryID != nil {
		if *cmd.CategoryID == 0 {
			t.ChangeCategory(nil)
		} else {
			c, err := uc.categoryRepo.GetByID(ctx, *cmd.CategoryID)
			if err != nil {
				return false, fmt.Errorf("failed to get category: %w", err)
			}
			if c == nil {
				return false, errors.NewValidationError("invalid category ID")
			}
			t.ChangeCategory(cmd.CategoryID)
		}
	}

	if cmd.AssigneeID != nil {
		if *cmd.AssigneeID == 0 {
			t.AssignTo(nil)
		} else {
			assignee, err := uc.userRepo.GetByID(ctx, *cmd.AssigneeID)
			if err != nil {
				return false, fmt.Errorf("failed to get assignee: %w", err)
			}
			if assignee == nil || !assignee.Role().IsStaff() {
				return false, errors.NewValidationError("assignee must be an existing agent or admin")
			}
			t.AssignTo(cmd.AssigneeID)
		}
	}

	statusChanged := false
	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return false, errors.NewValidationError(err.Error())
		}
		if statusChanged, err = t.ChangeStatus(status); err != nil {
			return false, errors.NewValidationError(err.Error())
		}
	}
	return statusChanged, nil
}

func (uc *UpdateTicketUseCase) notifyStatusChange(ctx context.Context, t *ticket.Ticket) {
	owner, err := uc.userRepo.GetByID(ctx, t.OwnerID())
	if err != nil || owner == nil {
		uc.logger.Warnw("skipping status notification, owner not loaded", "ticket_id", t.ID(), "error", err)
		return
	}
	uc.dispatcher.Dispatch(ctx, notification.NewTicketStatusChanged(
		owner.Email().String(),
		owner.FullName().String(),
		t.ID(),
		t.Subject(),
		t.Status().Label(),
	))
}
