package ticket

import (
	"context"
	"io"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/application/ticket/usecases"
)

func init() {
	RegisterValidators()
}

type mockCreateTicketUC struct {
	result *dto.TicketDTO
	err    error
	got    usecases.CreateTicketCommand
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	result *usecases.ListTicketsResult
	err    error
	got    usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *dto.TicketDetailDTO
	err    error
	got    usecases.GetTicketQuery
}

func (m *mockGetTicketUC) Execute(_ context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	result *dto.TicketDetailDTO
	err    error
	got    usecases.UpdateTicketCommand
	called bool
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDetailDTO, error) {
	m.got = cmd
	m.called = true
	return m.result, m.err
}

type mockVoteTicketUC struct {
	result *dto.VoteResultDTO
	err    error
	got    usecases.VoteTicketCommand
}

func (m *mockVoteTicketUC) Execute(_ context.Context, cmd usecases.VoteTicketCommand) (*dto.VoteResultDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCreateCommentUC struct {
	result *dto.CommentDTO
	err    error
	got    usecases.CreateCommentCommand
}

func (m *mockCreateCommentUC) Execute(_ context.Context, cmd usecases.CreateCommentCommand) (*dto.CommentDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListCommentsUC struct {
	result []*dto.CommentDTO
	err    error
	got    usecases.ListTicketCommentsQuery
}

func (m *mockListCommentsUC) Execute(_ context.Context, q usecases.ListTicketCommentsQuery) ([]*dto.CommentDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockGetCommentUC struct {
	result *dto.CommentDTO
	err    error
}

func (m *mockGetCommentUC) Execute(_ context.Context, _ usecases.GetCommentQuery) (*dto.CommentDTO, error) {
	return m.result, m.err
}

type mockUploadAttachmentUC struct {
	result  *dto.AttachmentDTO
	err     error
	got     usecases.UploadAttachmentCommand
	content []byte
}

func (m *mockUploadAttachmentUC) Execute(_ context.Context, cmd usecases.UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	m.got = cmd
	if cmd.Content != nil {
		m.content, _ = io.ReadAll(cmd.Content)
	}
	return m.result, m.err
}

type mockListAttachmentsUC struct {
	result []*dto.AttachmentDTO
	err    error
}

func (m *mockListAttachmentsUC) Execute(_ context.Context, _ usecases.ListAttachmentsQuery) ([]*dto.AttachmentDTO, error) {
	return m.result, m.err
}

type mockDownloadAttachmentUC struct {
	result *usecases.DownloadAttachmentResult
	err    error
}

func (m *mockDownloadAttachmentUC) Execute(_ context.Context, _ usecases.DownloadAttachmentQuery) (*usecases.DownloadAttachmentResult, error) {
	return m.result, m.err
}
