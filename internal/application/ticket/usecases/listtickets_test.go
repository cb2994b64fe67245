package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/logger"
	"github.com/qreserve/qreserve/internal/shared/query"
)

func TestListTicketsUseCase_Execute_ScopesByRole(t *testing.T) {
	tests := []struct {
		name      string
		actor     Actor
		wantOwner *uint
	}{
		{"end user sees own tickets", Actor{UserID: 7, Role: authorization.RoleEndUser}, uintPtr(7)},
		{"agent sees all", Actor{UserID: 2, Role: authorization.RoleAgent}, nil},
		{"admin sees all", Actor{UserID: 1, Role: authorization.RoleAdmin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ticket.ListFilter
			repo := &mockTicketRepository{
				ListFunc: func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
					got = filter
					return []*ticket.Ticket{newTestTicket(1, 7)}, 1, nil
				},
			}
			uc := NewListTicketsUseCase(repo, newMockUserRepository(newTestUser(7, authorization.RoleEndUser)),
				newMockCategoryRepository(), upperRenderer{}, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: tt.actor})

			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, got.OwnerID)
			assert.Equal(t, 1, got.Page)
			assert.Equal(t, 20, got.PageSize)
			assert.Equal(t, ticket.SortByUpdatedAt, got.SortBy)
			assert.Equal(t, query.SortDesc, got.SortOrder)
			assert.Equal(t, int64(1), result.Total)
			require.Len(t, result.Tickets, 1)
			assert.Equal(t, "user7@example.com", result.Tickets[0].Owner.Email)
		})
	}
}

func TestListTicketsUseCase_Execute_Filters(t *testing.T) {
	var got ticket.ListFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
			got = filter
			return nil, 0, nil
		},
		StatsFunc: func(ctx context.Context, ids []uint) (map[uint]ticket.Stats, error) {
			t.Fatal("stats must not be loaded for an empty page")
			return nil, nil
		},
	}
	uc := NewListTicketsUseCase(repo, newMockUserRepository(), newMockCategoryRepository(), upperRenderer{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Actor:      Actor{UserID: 2, Role: authorization.RoleAgent},
		Status:     "resolved",
		CategoryID: uintPtr(3),
		Search:     strPtr("printer"),
		SortBy:     "priority",
		SortOrder:  "asc",
		Page:       2,
		PageSize:   5,
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Tickets)
	assert.Empty(t, result.Tickets)
	require.NotNil(t, got.Status)
	assert.Equal(t, vo.StatusResolved, *got.Status)
	assert.Equal(t, uint(3), *got.CategoryID)
	assert.Equal(t, "printer", *got.Search)
	assert.Equal(t, "priority", got.SortBy)
	assert.Equal(t, "asc", got.SortOrder)
	assert.Equal(t, 5, got.Offset())
}

func TestListTicketsUseCase_Execute_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query ListTicketsQuery
	}{
		{"negative page", ListTicketsQuery{Page: -1}},
		{"page size too large", ListTicketsQuery{PageSize: 101}},
		{"unknown status", ListTicketsQuery{Status: "pending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewListTicketsUseCase(&mockTicketRepository{}, newMockUserRepository(), newMockCategoryRepository(), upperRenderer{}, logger.NewNopLogger())
			tt.query.Actor = Actor{UserID: 1, Role: authorization.RoleAdmin}

			_, err := uc.Execute(context.Background(), tt.query)

			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestListTicketsUseCase_Execute_Stats(t *testing.T) {
	assignee := newTestUser(2, authorization.RoleAgent)
	tk := newTestTicket(5, 7)
	tk.AssignTo(uintPtr(2))
	tk.ChangeCategory(uintPtr(3))

	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
			return []*ticket.Ticket{tk}, 1, nil
		},
		StatsFunc: func(ctx context.Context, ids []uint) (map[uint]ticket.Stats, error) {
			assert.Equal(t, []uint{5}, ids)
			return map[uint]ticket.Stats{5: {CommentCount: 4, VoteScore: -2}}, nil
		},
	}
	uc := NewListTicketsUseCase(repo,
		newMockUserRepository(newTestUser(7, authorization.RoleEndUser), assignee),
		newMockCategoryRepository(newTestCategory(3, "Network", true)),
		upperRenderer{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: Actor{UserID: 2, Role: authorization.RoleAgent}})

	require.NoError(t, err)
	item := result.Tickets[0]
	assert.Equal(t, int64(4), item.CommentCount)
	assert.Equal(t, int64(-2), item.VoteScore)
	require.NotNil(t, item.Assignee)
	assert.Equal(t, "agent", item.Assignee.Role)
	assert.Equal(t, "Network", item.Category.Name)
}
