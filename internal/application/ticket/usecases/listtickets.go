package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/domain/user"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/query"
)

// ListTicketsQuery mirrors the listing query string. Zero Page and PageSize
// take the defaults; Search nil means no text filter.
type ListTicketsQuery struct {
	Actor      Actor
	Status     string
	CategoryID *uint
	Search     *string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	assembler  *ticketAssembler
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	categoryRepo category.Repository,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		assembler: &ticketAssembler{
			ticketRepo:   ticketRepo,
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			renderer:     renderer,
		},
		logger: logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(q)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		// unknown sort keys come back as validation errors
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to list tickets", "user_id", q.Actor.UserID, "error", err)
		}
		return nil, err
	}

	items, err := uc.assembler.assemble(ctx, tickets)
	if err != nil {
		uc.logger.Errorw("failed to assemble ticket list", "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(q ListTicketsQuery) (ticket.ListFilter, error) {
	var filter ticket.ListFilter

	switch {
	case authorization.Can(q.Actor.Role, authorization.CapTicketReadAny):
	case authorization.Can(q.Actor.Role, authorization.CapTicketReadOwn):
		ownerID := q.Actor.UserID
		filter.OwnerID = &ownerID
	default:
		return filter, errors.NewForbiddenError("not authorized to list tickets")
	}

	page, pageSize := q.Page, q.PageSize
	if page == 0 {
		page = constants.DefaultPage
	}
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}
	if page < 1 {
		return filter, errors.NewValidationError("page must be at least 1")
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		return filter, errors.NewValidationError("page_size must be between 1 and 100")
	}
	filter.PageFilter = query.PageFilter{Page: page, PageSize: pageSize}

	filter.SortFilter = query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder}.
		WithDefaults(ticket.SortByUpdatedAt, query.SortDesc)

	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	filter.CategoryID = q.CategoryID
	filter.Search = q.Search
	return filter, nil
}
