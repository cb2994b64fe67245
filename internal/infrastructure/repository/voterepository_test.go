package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
)

func TestVoteRepository_Lifecycle(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	tk := f.createTicket(t, "slow wifi", owner.ID(), nil)

	none, err := f.votes.GetByTicketAndUser(ctx, tk.ID(), owner.ID())
	require.NoError(t, err)
	assert.Nil(t, none)

	v, err := ticket.NewVote(tk.ID(), owner.ID(), vo.VoteUp)
	require.NoError(t, err)
	require.NoError(t, f.votes.Create(ctx, v))

	score, err := f.votes.Score(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), score)

	existing, err := f.votes.GetByTicketAndUser(ctx, tk.ID(), owner.ID())
	require.NoError(t, err)
	switched, action, err := ticket.CastVote(existing, tk.ID(), owner.ID(), vo.VoteDown)
	require.NoError(t, err)
	require.Equal(t, ticket.VoteActionSwitch, action)
	require.NoError(t, f.votes.Update(ctx, switched))

	score, err = f.votes.Score(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), score)

	require.NoError(t, f.votes.Delete(ctx, switched.ID()))
	score, err = f.votes.Score(ctx, tk.ID())
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestVoteRepository_DuplicateIsConflict(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	tk := f.createTicket(t, "slow wifi", owner.ID(), nil)

	first, err := ticket.NewVote(tk.ID(), owner.ID(), vo.VoteUp)
	require.NoError(t, err)
	require.NoError(t, f.votes.Create(ctx, first))

	second, err := ticket.NewVote(tk.ID(), owner.ID(), vo.VoteDown)
	require.NoError(t, err)
	err = f.votes.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestCommentRepository_ListByTicket(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	tk := f.createTicket(t, "printer jam", owner.ID(), nil)
	other := f.createTicket(t, "other", owner.ID(), nil)

	root, err := ticket.NewComment(tk.ID(), owner.ID(), "first", nil)
	require.NoError(t, err)
	require.NoError(t, f.comments.Create(ctx, root))

	reply, err := ticket.NewComment(tk.ID(), owner.ID(), "second", root)
	require.NoError(t, err)
	require.NoError(t, f.comments.Create(ctx, reply))

	elsewhere, err := ticket.NewComment(other.ID(), owner.ID(), "elsewhere", nil)
	require.NoError(t, err)
	require.NoError(t, f.comments.Create(ctx, elsewhere))

	list, err := f.comments.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, root.ID(), list[0].ID())
	assert.Equal(t, root.ID(), *list[1].ParentID())

	got, err := f.comments.GetByID(ctx, reply.ID())
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content())

	missing, err := f.comments.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttachmentRepository(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	tk := f.createTicket(t, "screenshot", owner.ID(), nil)

	a, err := ticket.NewAttachment(tk.ID(), owner.ID(), "screen.png", "1/abc.png", 2048, "image/png")
	require.NoError(t, err)
	require.NoError(t, f.attachments.Create(ctx, a))

	list, err := f.attachments.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "screen.png", list[0].Filename())
	assert.Equal(t, int64(2048), list[0].FileSize())

	got, err := f.attachments.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MimeType())
}
