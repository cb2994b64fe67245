package ticket

import (
	"context"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
)

type createTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

type listTicketsUseCase interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type getTicketUseCase interface {
	Execute(ctx context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailDTO, error)
}

type updateTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDetailDTO, error)
}

type voteTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.VoteTicketCommand) (*dto.VoteResultDTO, error)
}

type createCommentUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCommentCommand) (*dto.CommentDTO, error)
}

type listTicketCommentsUseCase interface {
	Execute(ctx context.Context, q usecases.ListTicketCommentsQuery) ([]*dto.CommentDTO, error)
}

type getCommentUseCase interface {
	Execute(ctx context.Context, q usecases.GetCommentQuery) (*dto.CommentDTO, error)
}

type uploadAttachmentUseCase interface {
	Execute(ctx context.Context, cmd usecases.UploadAttachmentCommand) (*dto.AttachmentDTO, error)
}

type listAttachmentsUseCase interface {
	Execute(ctx context.Context, q usecases.ListAttachmentsQuery) ([]*dto.AttachmentDTO, error)
}

type downloadAttachmentUseCase interface {
	Execute(ctx context.Context, q usecases.DownloadAttachmentQuery) (*usecases.DownloadAttachmentResult, error)
}
