package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC createTicketUseCase
	listTicketsUC  listTicketsUseCase
	getTicketUC    getTicketUseCase
	updateTicketUC updateTicketUseCase
	voteTicketUC   voteTicketUseCase
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC createTicketUseCase,
	listTicketsUC listTicketsUseCase,
	getTicketUC getTicketUseCase,
	updateTicketUC updateTicketUseCase,
	voteTicketUC voteTicketUseCase,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		updateTicketUC: updateTicketUC,
		voteTicketUC:   voteTicketUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /tickets
//
//	@Summary		Open a ticket
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			body	body		CreateTicketRequest	true	"Ticket"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse	"Validation error or unknown category"
//	@Router			/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket created successfully", result)
}

// ListTickets handles GET /tickets
//
//	@Summary		List tickets
//	@Description	End users only see their own tickets.
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			status		query		string	false	"open, in_progress, resolved or closed"
//	@Param			category_id	query		int		false	"Category filter"
//	@Param			search		query		string	false	"Substring of subject or description"
//	@Param			sort_by		query		string	false	"created_at, updated_at, subject or priority"
//	@Param			sort_order	query		string	false	"asc or desc"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size (max 100)"
//	@Success		200			{object}	utils.APIResponse
//	@Router			/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, err := parseListTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /tickets/:id
//
//	@Summary		Get a ticket with the caller's vote
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		403	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PATCH /tickets/:id
//
//	@Summary		Update ticket workflow fields
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			body	body		UpdateTicketRequest	true	"Changes"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		403		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(actor, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// VoteTicket handles POST /tickets/:id/vote?vote_type=up|down. Repeating the
// same vote removes it; the opposite vote replaces it.
//
//	@Summary		Vote on a ticket
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		int		true	"Ticket ID"
//	@Param			vote_type	query		string	true	"up or down"
//	@Success		200			{object}	utils.APIResponse
//	@Failure		400			{object}	utils.APIResponse
//	@Failure		404			{object}	utils.APIResponse
//	@Router			/tickets/{id}/vote [post]
func (h *TicketHandler) VoteTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req VoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.voteTicketUC.Execute(c.Request.Context(), usecases.VoteTicketCommand{
		Actor:    actor,
		TicketID: ticketID,
		VoteType: req.VoteType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vote recorded", result)
}
