package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uint
	Role   authorization.UserRole
}

// canReadTicket lets staff read any ticket and end users only their own.
func canReadTicket(actor Actor, t *ticket.Ticket) bool {
	if authorization.Can(actor.Role, authorization.CapTicketReadAny) {
		return true
	}
	return authorization.Can(actor.Role, authorization.CapTicketReadOwn) && t.IsOwnedBy(actor.UserID)
}

func canReadComments(actor Actor, t *ticket.Ticket) bool {
	if authorization.Can(actor.Role, authorization.CapCommentReadAny) {
		return true
	}
	return authorization.Can(actor.Role, authorization.CapCommentReadOwn) && t.IsOwnedBy(actor.UserID)
}

// loadTicket returns a not-found AppError when the ticket does not exist.
func loadTicket(ctx context.Context, repo ticket.Repository, id uint, log logger.Interface) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get ticket", "ticket_id", id, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	return t, nil
}

// loadReadableTicket applies the 404-then-403 order every ticket-scoped read
// follows.
func loadReadableTicket(ctx context.Context, repo ticket.Repository, actor Actor, id uint, log logger.Interface) (*ticket.Ticket, error) {
	t, err := loadTicket(ctx, repo, id, log)
	if err != nil {
		return nil, err
	}
	if !canReadTicket(actor, t) {
		log.Warnw("ticket access denied", "ticket_id", id, "user_id", actor.UserID, "role", actor.Role)
		return nil, errors.NewForbiddenError("not authorized to access this ticket")
	}
	return t, nil
}
