package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "resolved", "closed"} {
		ts, err := NewTicketStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, ts.String())
	}

	for _, s := range []string{"", "new", "OPEN", "pending"} {
		_, err := NewTicketStatus(s)
		assert.Error(t, err, s)
	}
}

func TestTicketStatus_IsFinal(t *testing.T) {
	assert.False(t, StatusOpen.IsFinal())
	assert.False(t, StatusInProgress.IsFinal())
	assert.True(t, StatusResolved.IsFinal())
	assert.True(t, StatusClosed.IsFinal())
}

func TestTicketStatus_Label(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Open", StatusOpen.Label())
}

func TestPriority_Rank(t *testing.T) {
	all := AllPriorities()
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].IsHigherThan(all[i-1]), "%s should outrank %s", all[i], all[i-1])
	}
	assert.Equal(t, 0, Priority("critical").Rank())

	_, err := NewPriority("critical")
	assert.Error(t, err)
	p, err := NewPriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, p)
}

func TestVoteType(t *testing.T) {
	assert.Equal(t, int64(1), VoteUp.Weight())
	assert.Equal(t, int64(-1), VoteDown.Weight())
	assert.Equal(t, int64(0), VoteType("sideways").Weight())

	_, err := NewVoteType("sideways")
	assert.Error(t, err)
	v, err := NewVoteType("down")
	require.NoError(t, err)
	assert.Equal(t, VoteDown, v)
}
