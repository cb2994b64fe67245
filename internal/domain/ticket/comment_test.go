package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedComment(t *testing.T, id, ticketID uint, parentID *uint, at time.Time) *Comment {
	t.Helper()
	c, err := ReconstructComment(id, ticketID, 1, parentID, "text", at, at)
	require.NoError(t, err)
	return c
}

func TestNewComment(t *testing.T) {
	now := time.Now().UTC()
	parent := persistedComment(t, 10, 1, nil, now)
	foreignParent := persistedComment(t, 11, 2, nil, now)

	tests := []struct {
		name     string
		ticketID uint
		authorID uint
		content  string
		parent   *Comment
		wantErr  error
		errMsg   string
	}{
		{name: "top level", ticketID: 1, authorID: 2, content: "hello"},
		{name: "reply", ticketID: 1, authorID: 2, content: "hello", parent: parent},
		{name: "zero ticket", ticketID: 0, authorID: 2, content: "x", errMsg: "ticket ID is required"},
		{name: "zero author", ticketID: 1, authorID: 0, content: "x", errMsg: "author ID is required"},
		{name: "blank content", ticketID: 1, authorID: 2, content: "  ", errMsg: "content is required"},
		{name: "too long", ticketID: 1, authorID: 2, content: strings.Repeat("x", 5001), errMsg: "exceeds maximum length"},
		{name: "parent on other ticket", ticketID: 1, authorID: 2, content: "x", parent: foreignParent, wantErr: ErrParentOnOtherTicket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewComment(tt.ticketID, tt.authorID, tt.content, tt.parent)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.ticketID, c.TicketID())
				assert.Equal(t, tt.parent != nil, c.IsReply())
				if tt.parent != nil {
					assert.Equal(t, tt.parent.ID(), *c.ParentID())
				}
			}
		})
	}
}

func TestReconstructComment_SelfParent(t *testing.T) {
	id := uint(4)
	_, err := ReconstructComment(4, 1, 1, &id, "x", time.Now(), time.Now())
	assert.Error(t, err)
}

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	// 1
	// ├── 3
	// │   └── 5
	// └── 4
	// 2
	// └── 6
	comments := []*Comment{
		persistedComment(t, 5, 1, uintPtr(3), at(5)),
		persistedComment(t, 2, 1, nil, at(2)),
		persistedComment(t, 4, 1, uintPtr(1), at(4)),
		persistedComment(t, 1, 1, nil, at(1)),
		persistedComment(t, 6, 1, uintPtr(2), at(6)),
		persistedComment(t, 3, 1, uintPtr(1), at(3)),
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].Comment.ID())
	assert.Equal(t, uint(2), tree[1].Comment.ID())

	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, uint(3), tree[0].Replies[0].Comment.ID())
	assert.Equal(t, uint(4), tree[0].Replies[1].Comment.ID())
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(5), tree[0].Replies[0].Replies[0].Comment.ID())
	assert.Empty(t, tree[0].Replies[1].Replies)

	require.Len(t, tree[1].Replies, 1)
	assert.Equal(t, uint(6), tree[1].Replies[0].Comment.ID())

	assert.Equal(t, len(comments), CountNodes(tree))
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestBuildCommentTree_OrphanBecomesTopLevel(t *testing.T) {
	now := time.Now().UTC()
	tree := BuildCommentTree([]*Comment{
		persistedComment(t, 8, 1, uintPtr(99), now),
	})
	require.Len(t, tree, 1)
	assert.Equal(t, uint(8), tree[0].Comment.ID())
}

func TestBuildCommentTree_DeepThread(t *testing.T) {
	const depth = 10000
	base := time.Now().UTC()
	comments := make([]*Comment, 0, depth)
	for i := 1; i <= depth; i++ {
		var parent *uint
		if i > 1 {
			parent = uintPtr(uint(i - 1))
		}
		comments = append(comments, persistedComment(t, uint(i), 1, parent, base.Add(time.Duration(i)*time.Second)))
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 1)
	assert.Equal(t, depth, CountNodes(tree))
}

func TestBuildCommentTree_TiesOrderedByID(t *testing.T) {
	now := time.Now().UTC()
	tree := BuildCommentTree([]*Comment{
		persistedComment(t, 9, 1, nil, now),
		persistedComment(t, 7, 1, nil, now),
	})
	require.Len(t, tree, 2)
	assert.Equal(t, uint(7), tree[0].Comment.ID())
}
