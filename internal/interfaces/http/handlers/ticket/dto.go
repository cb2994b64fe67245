package ticket

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

// CreateTicketRequest requires the description field but accepts it empty.
type CreateTicketRequest struct {
	Subject     string  `json:"subject" binding:"required,notblank,max=200"`
	Description *string `json:"description" binding:"required,max=10000"`
	Priority    string  `json:"priority" binding:"omitempty,ticket_priority"`
	CategoryID  *uint   `json:"category_id"`
}

func (r *CreateTicketRequest) ToCommand(actor usecases.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:       actor,
		Subject:     r.Subject,
		Description: *r.Description,
		Priority:    r.Priority,
		CategoryID:  r.CategoryID,
	}
}

// UpdateTicketRequest is a partial update. A category_id or assignee_id of 0
// clears the field.
type UpdateTicketRequest struct {
	Subject     *string `json:"subject" binding:"omitempty,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Status      *string `json:"status" binding:"omitempty,ticket_status"`
	Priority    *string `json:"priority" binding:"omitempty,ticket_priority"`
	CategoryID  *uint   `json:"category_id"`
	AssigneeID  *uint   `json:"assignee_id"`
}

func (r *UpdateTicketRequest) ToCommand(actor usecases.Actor, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:       actor,
		TicketID:    ticketID,
		Subject:     r.Subject,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		CategoryID:  r.CategoryID,
		AssigneeID:  r.AssigneeID,
	}
}

type VoteRequest struct {
	VoteType string `form:"vote_type" binding:"required,vote_type"`
}

type CreateCommentRequest struct {
	TicketID uint   `json:"ticket_id" binding:"required"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content" binding:"required,notblank,max=10000"`
}

func (r *CreateCommentRequest) ToCommand(actor usecases.Actor) usecases.CreateCommentCommand {
	return usecases.CreateCommentCommand{
		Actor:    actor,
		TicketID: r.TicketID,
		ParentID: r.ParentID,
		Content:  r.Content,
	}
}

type ListTicketsRequest struct {
	utils.Pagination
	Status     string
	CategoryID *uint
	Search     *string
	SortBy     string
	SortOrder  string
}

func (r *ListTicketsRequest) ToQuery(actor usecases.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:      actor,
		Status:     r.Status,
		CategoryID: r.CategoryID,
		Search:     r.Search,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	pagination, err := utils.ParsePagination(c)
	if err != nil {
		return nil, err
	}

	req := &ListTicketsRequest{
		Pagination: pagination,
		Status:     c.Query("status"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  strings.ToLower(c.Query("sort_order")),
	}

	if req.SortOrder != "" && req.SortOrder != "asc" && req.SortOrder != "desc" {
		return nil, errors.NewValidationError("sort_order must be asc or desc")
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return nil, errors.NewValidationError("invalid category_id")
		}
		categoryID := uint(id)
		req.CategoryID = &categoryID
	}

	// The term is matched as sent; a present but empty search matches all.
	if search, ok := c.GetQuery("search"); ok {
		req.Search = &search
	}

	return req, nil
}

// currentActor reads the authenticated caller set by the auth middleware.
func currentActor(c *gin.Context) (usecases.Actor, error) {
	userID, role, err := utils.CurrentUser(c)
	if err != nil {
		return usecases.Actor{}, err
	}
	return usecases.Actor{UserID: userID, Role: role}, nil
}
