package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/query"
)

func ticketIDs(list []*ticket.Ticket) []uint {
	ids := make([]uint, len(list))
	for i, t := range list {
		ids[i] = t.ID()
	}
	return ids
}

func TestTicketRepository_CreateUpdateGet(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	agent := f.createUser(t, "agent@example.com", authorization.RoleAgent)
	cat := f.createCategory(t, "Hardware")

	tk := f.createTicket(t, "printer jam", owner.ID(), uintPtr(cat.ID()))
	require.NotZero(t, tk.ID())

	_, err := tk.ChangeStatus(vo.StatusInProgress)
	require.NoError(t, err)
	tk.AssignTo(uintPtr(agent.ID()))
	require.NoError(t, f.tickets.Update(ctx, tk))

	got, err := f.tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, got.Status())
	assert.Equal(t, agent.ID(), *got.AssigneeID())
	assert.Equal(t, cat.ID(), *got.CategoryID())

	got.AssignTo(nil)
	got.ChangeCategory(nil)
	require.NoError(t, f.tickets.Update(ctx, got))
	got, err = f.tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID())
	assert.Nil(t, got.CategoryID())

	missing, err := f.tickets.GetByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_Counts(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	cat := f.createCategory(t, "Network")
	empty := f.createCategory(t, "Unused")

	f.createTicket(t, "vpn", owner.ID(), uintPtr(cat.ID()))

	n, err := f.tickets.CountByCategory(ctx, cat.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = f.tickets.CountByCategory(ctx, empty.ID())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTicketRepository_ListFilters(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com", authorization.RoleEndUser)
	bob := f.createUser(t, "bob@example.com", authorization.RoleEndUser)
	hw := f.createCategory(t, "Hardware")

	a1 := f.createTicket(t, "Printer jam", alice.ID(), uintPtr(hw.ID()))
	a2 := f.createTicket(t, "VPN drops 50% of packets", alice.ID(), nil)
	b1 := f.createTicket(t, "Laptop fan", bob.ID(), uintPtr(hw.ID()))
	_, err := b1.ChangeStatus(vo.StatusResolved)
	require.NoError(t, err)
	require.NoError(t, f.tickets.Update(ctx, b1))

	resolved := vo.StatusResolved
	tests := []struct {
		name   string
		filter ticket.ListFilter
		want   []uint
	}{
		{"owner only", ticket.ListFilter{OwnerID: uintPtr(alice.ID())}, []uint{a1.ID(), a2.ID()}},
		{"all owners", ticket.ListFilter{}, []uint{a1.ID(), a2.ID(), b1.ID()}},
		{"status", ticket.ListFilter{Status: &resolved}, []uint{b1.ID()}},
		{"category", ticket.ListFilter{CategoryID: uintPtr(hw.ID())}, []uint{a1.ID(), b1.ID()}},
		{"search subject case insensitive", ticket.ListFilter{Search: strPtr("PRINTER")}, []uint{a1.ID()}},
		{"search description", ticket.ListFilter{Search: strPtr("description of laptop")}, []uint{b1.ID()}},
		{"search literal percent", ticket.ListFilter{Search: strPtr("50%")}, []uint{a2.ID()}},
		{"percent is not a wildcard", ticket.ListFilter{Search: strPtr("%jam")}, []uint{}},
		{"empty search matches all", ticket.ListFilter{Search: strPtr("")}, []uint{a1.ID(), a2.ID(), b1.ID()}},
		{"whitespace search is literal", ticket.ListFilter{Search: strPtr("  ")}, []uint{}},
		{"owner and category", ticket.ListFilter{OwnerID: uintPtr(bob.ID()), CategoryID: uintPtr(hw.ID())}, []uint{b1.ID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := f.tickets.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.ElementsMatch(t, tt.want, ticketIDs(got))
		})
	}
}

func TestTicketRepository_ListSortingAndPaging(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	low := f.insertTicket(t, "bravo", owner.ID(), vo.PriorityLow, base.Add(3*time.Hour))
	urgent := f.insertTicket(t, "alpha", owner.ID(), vo.PriorityUrgent, base.Add(1*time.Hour))
	high := f.insertTicket(t, "charlie", owner.ID(), vo.PriorityHigh, base.Add(2*time.Hour))
	medium := f.insertTicket(t, "delta", owner.ID(), vo.PriorityMedium, base)

	tests := []struct {
		name string
		sort query.SortFilter
		want []uint
	}{
		{"default updated_at desc", query.SortFilter{}, []uint{low.ID(), high.ID(), urgent.ID(), medium.ID()}},
		{"subject asc", query.SortFilter{SortBy: "subject", SortOrder: "asc"}, []uint{urgent.ID(), low.ID(), high.ID(), medium.ID()}},
		{"priority desc by rank", query.SortFilter{SortBy: "priority", SortOrder: "desc"}, []uint{urgent.ID(), high.ID(), medium.ID(), low.ID()}},
		{"priority asc by rank", query.SortFilter{SortBy: "priority", SortOrder: "asc"}, []uint{low.ID(), medium.ID(), high.ID(), urgent.ID()}},
		{"created_at asc", query.SortFilter{SortBy: "created_at", SortOrder: "asc"}, []uint{medium.ID(), urgent.ID(), high.ID(), low.ID()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := f.tickets.List(ctx, ticket.ListFilter{SortFilter: tt.sort})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ticketIDs(got))
		})
	}

	page2, total, err := f.tickets.List(ctx, ticket.ListFilter{
		PageFilter: query.PageFilter{Page: 2, PageSize: 3},
		SortFilter: query.SortFilter{SortBy: "subject", SortOrder: "asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []uint{medium.ID()}, ticketIDs(page2))

	beyond, total, err := f.tickets.List(ctx, ticket.ListFilter{PageFilter: query.PageFilter{Page: 5, PageSize: 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, beyond)
}

func TestTicketRepository_ListRejectsUnknownSort(t *testing.T) {
	f := newFixtures(t)

	_, _, err := f.tickets.List(context.Background(), ticket.ListFilter{SortFilter: query.SortFilter{SortBy: "owner_id; DROP TABLE tickets"}})
	assert.True(t, errors.IsValidationError(err))

	_, _, err = f.tickets.List(context.Background(), ticket.ListFilter{SortFilter: query.SortFilter{SortBy: "subject", SortOrder: "sideways"}})
	assert.True(t, errors.IsValidationError(err))

	bogus := vo.TicketStatus("archived")
	_, _, err = f.tickets.List(context.Background(), ticket.ListFilter{Status: &bogus})
	assert.True(t, errors.IsValidationError(err))
}

func TestTicketRepository_Stats(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", authorization.RoleEndUser)
	v1 := f.createUser(t, "v1@example.com", authorization.RoleEndUser)
	v2 := f.createUser(t, "v2@example.com", authorization.RoleAgent)

	busy := f.createTicket(t, "busy", owner.ID(), nil)
	quiet := f.createTicket(t, "quiet", owner.ID(), nil)

	for i := 0; i < 2; i++ {
		c, err := ticket.NewComment(busy.ID(), owner.ID(), "ping", nil)
		require.NoError(t, err)
		require.NoError(t, f.comments.Create(ctx, c))
	}
	for _, u := range []uint{owner.ID(), v1.ID()} {
		v, err := ticket.NewVote(busy.ID(), u, vo.VoteUp)
		require.NoError(t, err)
		require.NoError(t, f.votes.Create(ctx, v))
	}
	down, err := ticket.NewVote(busy.ID(), v2.ID(), vo.VoteDown)
	require.NoError(t, err)
	require.NoError(t, f.votes.Create(ctx, down))

	stats, err := f.tickets.Stats(ctx, []uint{busy.ID(), quiet.ID()})
	require.NoError(t, err)
	assert.Equal(t, ticket.Stats{CommentCount: 2, VoteScore: 1}, stats[busy.ID()])
	assert.Equal(t, ticket.Stats{}, stats[quiet.ID()])

	empty, err := f.tickets.Stats(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
