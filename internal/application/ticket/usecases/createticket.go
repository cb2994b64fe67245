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

type CreateTicketCommand struct {
	Actor       Actor
	Subject     string
	Description string
	Priority    string
	CategoryID  *uint
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.Repository
	categoryRepo category.Repository
	userRepo     user.Repository
	txManager    db.Transactor
	dispatcher   notification.Dispatcher
	assembler    *ticketAssembler
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	categoryRepo category.Repository,
	userRepo user.Repository,
	txManager db.Transactor,
	dispatcher notification.Dispatcher,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
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

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	if !authorization.Can(cmd.Actor.Role, authorization.CapTicketCreate) {
		return nil, errors.NewForbiddenError("not authorized to create tickets")
	}

	var priority vo.Priority
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		priority = p
	}

	if cmd.CategoryID != nil {
		c, err := uc.categoryRepo.GetByID(ctx, *cmd.CategoryID)
		if err != nil {
			uc.logger.Errorw("failed to get category", "category_id", *cmd.CategoryID, "error", err)
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		if c == nil || !c.IsActive() {
			return nil, errors.NewValidationError("invalid category ID")
		}
	}

	newTicket, err := ticket.NewTicket(cmd.Subject, cmd.Description, priority, cmd.Actor.UserID, cmd.CategoryID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Create(txCtx, newTicket)
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "owner_id", cmd.Actor.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(),
		"owner_id", newTicket.OwnerID(),
		"priority", newTicket.Priority(),
	)

	uc.notifyOwner(ctx, newTicket)

	result, err := uc.assembler.assembleOne(ctx, newTicket)
	if err != nil {
		uc.logger.Warnw("ticket saved without related details", "ticket_id", newTicket.ID(), "error", err)
		return uc.assembler.bareTicket(newTicket), nil
	}
	return result, nil
}

func (uc *CreateTicketUseCase) notifyOwner(ctx context.Context, t *ticket.Ticket) {
	owner, err := uc.userRepo.GetByID(ctx, t.OwnerID())
	if err != nil || owner == nil {
		uc.logger.Warnw("skipping ticket created notification, owner not loaded", "ticket_id", t.ID(), "error", err)
		return
	}
	uc.dispatcher.Dispatch(ctx, notification.NewTicketCreated(
		owner.Email().String(),
		owner.FullName().String(),
		t.ID(),
		t.Subject(),
	))
}
