package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// memoryVotes keeps one vote per user so the toggle sequence can be replayed.
type memoryVotes struct {
	votes  map[uint]*ticket.Vote
	nextID uint
}

func newMemoryVotes() *memoryVotes {
	return &memoryVotes{votes: make(map[uint]*ticket.Vote), nextID: 1}
}

func (m *memoryVotes) repo() *mockVoteRepository {
	return &mockVoteRepository{
		CreateFunc: func(ctx context.Context, v *ticket.Vote) error {
			if err := v.SetID(m.nextID); err != nil {
				return err
			}
			m.nextID++
			m.votes[v.UserID()] = v
			return nil
		},
		UpdateFunc: func(ctx context.Context, v *ticket.Vote) error {
			m.votes[v.UserID()] = v
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			for userID, v := range m.votes {
				if v.ID() == id {
					delete(m.votes, userID)
				}
			}
			return nil
		},
		GetByTicketAndUserFunc: func(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
			return m.votes[userID], nil
		},
		ScoreFunc: func(ctx context.Context, ticketID uint) (int64, error) {
			var score int64
			for _, v := range m.votes {
				score += v.Type().Weight()
			}
			return score, nil
		},
	}
}

func TestVoteTicketUseCase_Execute_Toggle(t *testing.T) {
	votes := newMemoryVotes()
	uc := NewVoteTicketUseCase(ticketRepoWith(newTestTicket(5, 7)), votes.repo(), db.NoopTransactor{}, logger.NewNopLogger())
	owner := Actor{UserID: 7, Role: authorization.RoleEndUser}

	steps := []struct {
		voteType   string
		wantAction string
		wantScore  int64
		wantVote   *string
	}{
		{"up", "create", 1, strPtr("up")},
		{"up", "remove", 0, nil},
		{"down", "create", -1, strPtr("down")},
		{"up", "switch", 1, strPtr("up")},
	}

	for _, step := range steps {
		result, err := uc.Execute(context.Background(), VoteTicketCommand{Actor: owner, TicketID: 5, VoteType: step.voteType})
		require.NoError(t, err)
		assert.Equal(t, step.wantAction, result.Action)
		assert.Equal(t, step.wantScore, result.VoteScore)
		assert.Equal(t, step.wantVote, result.UserVote)
	}
}

func TestVoteTicketUseCase_Execute_ScoreCountsEveryUser(t *testing.T) {
	votes := newMemoryVotes()
	existing, err := ticket.ReconstructVote(50, 5, 2, vo.VoteUp, testTime, testTime)
	require.NoError(t, err)
	votes.votes[2] = existing
	uc := NewVoteTicketUseCase(ticketRepoWith(newTestTicket(5, 7)), votes.repo(), db.NoopTransactor{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), VoteTicketCommand{
		Actor:    Actor{UserID: 7, Role: authorization.RoleEndUser},
		TicketID: 5,
		VoteType: "up",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.VoteScore)
}

func TestVoteTicketUseCase_Execute_OtherUsersTicket(t *testing.T) {
	votes := newMemoryVotes()
	uc := NewVoteTicketUseCase(ticketRepoWith(newTestTicket(5, 7)), votes.repo(), db.NoopTransactor{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), VoteTicketCommand{
		Actor:    Actor{UserID: 8, Role: authorization.RoleEndUser},
		TicketID: 5,
		VoteType: "down",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.VoteScore)
	assert.Equal(t, strPtr("down"), result.UserVote)
}

func TestVoteTicketUseCase_Execute_Errors(t *testing.T) {
	uc := NewVoteTicketUseCase(ticketRepoWith(newTestTicket(5, 7)), newMemoryVotes().repo(), db.NoopTransactor{}, logger.NewNopLogger())

	tests := []struct {
		name    string
		command VoteTicketCommand
		check   func(error) bool
	}{
		{"bad type", VoteTicketCommand{Actor: Actor{UserID: 7, Role: authorization.RoleEndUser}, TicketID: 5, VoteType: "sideways"}, errors.IsValidationError},
		{"missing ticket", VoteTicketCommand{Actor: Actor{UserID: 7, Role: authorization.RoleEndUser}, TicketID: 9, VoteType: "up"}, errors.IsNotFoundError},
		{"unknown role", VoteTicketCommand{Actor: Actor{UserID: 8, Role: authorization.UserRole("guest")}, TicketID: 5, VoteType: "up"}, errors.IsForbiddenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.command)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}
