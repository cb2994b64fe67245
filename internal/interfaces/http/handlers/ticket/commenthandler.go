package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

type CommentHandler struct {
	createCommentUC createCommentUseCase
	listCommentsUC  listTicketCommentsUseCase
	getCommentUC    getCommentUseCase
	logger          logger.Interface
}

func NewCommentHandler(
	createCommentUC createCommentUseCase,
	listCommentsUC listTicketCommentsUseCase,
	getCommentUC getCommentUseCase,
	logger logger.Interface,
) *CommentHandler {
	return &CommentHandler{
		createCommentUC: createCommentUC,
		listCommentsUC:  listCommentsUC,
		getCommentUC:    getCommentUC,
		logger:          logger,
	}
}

// CreateComment handles POST /comments
//
//	@Summary		Comment on a ticket, optionally as a reply
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			body	body		CreateCommentRequest	true	"Comment"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse	"Bad parent"
//	@Failure		403		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createCommentUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment added successfully", result)
}

// ListTicketComments handles GET /comments/ticket/:id
//
//	@Summary		Comment tree of a ticket
//	@Description	Top-level comments ordered by creation time with replies nested.
//	@Tags			comments
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Router			/comments/ticket/{id} [get]
func (h *CommentHandler) ListTicketComments(c *gin.Context) {
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

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListTicketCommentsQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetComment handles GET /comments/:id
//
//	@Summary		Get a comment
//	@Tags			comments
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Comment ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		403	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	commentID, err := utils.ParseIDParam(c, "id", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getCommentUC.Execute(c.Request.Context(), usecases.GetCommentQuery{
		Actor:     actor,
		CommentID: commentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
