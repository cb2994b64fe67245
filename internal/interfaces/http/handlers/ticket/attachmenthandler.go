package ticket

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

const attachmentFormField = "file"

type AttachmentHandler struct {
	uploadUC   uploadAttachmentUseCase
	listUC     listAttachmentsUseCase
	downloadUC downloadAttachmentUseCase
	logger     logger.Interface
}

func NewAttachmentHandler(
	uploadUC uploadAttachmentUseCase,
	listUC listAttachmentsUseCase,
	downloadUC downloadAttachmentUseCase,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC:   uploadUC,
		listUC:     listUC,
		downloadUC: downloadUC,
		logger:     logger,
	}
}

// UploadAttachment handles POST /tickets/:id/attachments (multipart, field "file")
//
//	@Summary		Attach a file to a ticket
//	@Tags			attachments
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int		true	"Ticket ID"
//	@Param			file	formData	file	true	"File"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse	"Too large or extension not allowed"
//	@Router			/tickets/{id}/attachments [post]
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
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

	header, err := c.FormFile(attachmentFormField)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required", err.Error()))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("unreadable upload"))
		return
	}
	defer file.Close()

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentCommand{
		Actor:    actor,
		TicketID: ticketID,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Attachment uploaded successfully", result)
}

// ListAttachments handles GET /tickets/:id/attachments
//
//	@Summary		List a ticket's attachments
//	@Tags			attachments
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Router			/tickets/{id}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
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

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAttachmentsQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DownloadAttachment handles GET /tickets/:id/attachments/:attachment_id
//
//	@Summary		Download an attachment
//	@Tags			attachments
//	@Produce		octet-stream
//	@Security		Bearer
//	@Param			id				path	int	true	"Ticket ID"
//	@Param			attachment_id	path	int	true	"Attachment ID"
//	@Success		200
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/tickets/{id}/attachments/{attachment_id} [get]
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
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
	attachmentID, err := utils.ParseIDParam(c, "attachment_id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		Actor:        actor,
		TicketID:     ticketID,
		AttachmentID: attachmentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	contentType := result.Attachment.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": result.Attachment.Filename})

	c.DataFromReader(http.StatusOK, result.Attachment.FileSize, contentType, result.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}
