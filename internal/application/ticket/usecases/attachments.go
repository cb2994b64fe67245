package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/config"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/mapper"
)

type UploadAttachmentCommand struct {
	Actor    Actor
	TicketID uint
	Filename string
	MimeType string
	// Size is the size declared by the client, checked before reading.
	Size    int64
	Content io.Reader
}

type UploadAttachmentUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	store          FileStore
	uploadConfig   config.UploadConfig
	txManager      db.Transactor
	logger         logger.Interface
}

func NewUploadAttachmentUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	store FileStore,
	uploadConfig config.UploadConfig,
	txManager db.Transactor,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		store:          store,
		uploadConfig:   uploadConfig,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	t, err := loadReadableTicket(ctx, uc.ticketRepo, cmd.Actor, cmd.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}
	if !authorization.Can(cmd.Actor.Role, authorization.CapAttachmentUpload) {
		return nil, errors.NewForbiddenError("not authorized to upload attachments")
	}

	if cmd.Filename == "" {
		return nil, errors.NewValidationError("filename is required")
	}
	if ext := filepath.Ext(cmd.Filename); !uc.uploadConfig.IsAllowedExtension(ext) {
		return nil, errors.NewValidationError("file type not allowed", fmt.Sprintf("extension %q", ext))
	}
	if cmd.Size > uc.uploadConfig.MaxFileSize {
		return nil, errors.NewValidationError("file too large",
			fmt.Sprintf("maximum size is %d bytes", uc.uploadConfig.MaxFileSize))
	}

	path, size, err := uc.store.Save(ctx, t.ID(), cmd.Filename, cmd.Content, uc.uploadConfig.MaxFileSize)
	if err != nil {
		if stderrors.Is(err, ticket.ErrAttachmentTooLarge) {
			return nil, errors.NewValidationError("file too large",
				fmt.Sprintf("maximum size is %d bytes", uc.uploadConfig.MaxFileSize))
		}
		uc.logger.Errorw("failed to store attachment", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	attachment, err := ticket.NewAttachment(t.ID(), cmd.Actor.UserID, cmd.Filename, path, size, cmd.MimeType)
	if err != nil {
		uc.removeFile(path)
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.attachmentRepo.Create(txCtx, attachment)
	})
	if err != nil {
		uc.removeFile(path)
		uc.logger.Errorw("failed to save attachment", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("attachment uploaded",
		"attachment_id", attachment.ID(),
		"ticket_id", t.ID(),
		"size", size,
	)
	return dto.ToAttachmentDTO(attachment), nil
}

func (uc *UploadAttachmentUseCase) removeFile(path string) {
	if err := uc.store.Remove(path); err != nil {
		uc.logger.Warnw("failed to remove orphaned attachment file", "path", path, "error", err)
	}
}

type ListAttachmentsQuery struct {
	Actor    Actor
	TicketID uint
}

type ListAttachmentsUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewListAttachmentsUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, q ListAttachmentsQuery) ([]*dto.AttachmentDTO, error) {
	t, err := loadReadableTicket(ctx, uc.ticketRepo, q.Actor, q.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return mapper.MapSlice(attachments, dto.ToAttachmentDTO), nil
}

type DownloadAttachmentQuery struct {
	Actor        Actor
	TicketID     uint
	AttachmentID uint
}

// DownloadAttachmentResult carries an open file; the caller closes Content.
type DownloadAttachmentResult struct {
	Attachment *dto.AttachmentDTO
	Content    io.ReadCloser
}

type DownloadAttachmentUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	store          FileStore
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	store FileStore,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		store:          store,
		logger:         logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, q DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	t, err := loadReadableTicket(ctx, uc.ticketRepo, q.Actor, q.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, q.AttachmentID)
	if err != nil {
		uc.logger.Errorw("failed to get attachment", "attachment_id", q.AttachmentID, "error", err)
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	if attachment == nil || attachment.TicketID() != t.ID() {
		return nil, errors.NewNotFoundError("attachment not found")
	}

	content, err := uc.store.Open(attachment.FilePath())
	if err != nil {
		uc.logger.Errorw("attachment file missing", "attachment_id", attachment.ID(), "path", attachment.FilePath(), "error", err)
		return nil, errors.NewNotFoundError("attachment file not found")
	}

	return &DownloadAttachmentResult{
		Attachment: dto.ToAttachmentDTO(attachment),
		Content:    content,
	}, nil
}
