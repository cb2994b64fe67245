package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/db"
	"github.com/qreserve/qreserve/internal/shared/errors"
	"github.com/qreserve/qreserve/internal/shared/query"
)

// priorityRankExpr sorts priorities by severity rather than alphabetically.
const priorityRankExpr = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'urgent' THEN 4 ELSE 0 END"

// ticketSortColumns whitelists ORDER BY expressions.
var ticketSortColumns = map[string]string{
	ticket.SortByCreatedAt: "created_at",
	ticket.SortByUpdatedAt: "updated_at",
	ticket.SortBySubject:   "subject",
	ticket.SortByPriority:  priorityRankExpr,
}

const voteScoreExpr = "COALESCE(SUM(CASE vote_type WHEN 'up' THEN 1 WHEN 'down' THEN -1 ELSE 0 END), 0)"

// List applies filters, search and ordering in SQL and returns one page plus
// the total number of matches.
func (r *TicketRepositoryImpl) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	sort := filter.SortFilter.WithDefaults(ticket.SortByUpdatedAt, query.SortDesc)
	if err := sort.Validate(ticketSortColumns); err != nil {
		return nil, 0, err
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, errors.NewValidationError("invalid status", fmt.Sprintf("got %q", *filter.Status))
	}

	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TicketModel{})

	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != nil {
		q = q.Scopes(db.ContainsInsensitive(*filter.Search, "subject", "description"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	// id breaks ties so pages do not overlap.
	tieBreak := "id DESC"
	if strings.EqualFold(sort.SortOrder, query.SortAsc) {
		tieBreak = "id ASC"
	}
	q = q.Order(sort.OrderClause(ticketSortColumns)).Order(tieBreak)
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.Limit())
	}

	var list []models.TicketModel
	if err := q.Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

type ticketAggregateRow struct {
	TicketID uint
	Total    int64
}

// Stats runs one grouped query for comment counts and one for vote scores,
// regardless of how many ids are requested.
func (r *TicketRepositoryImpl) Stats(ctx context.Context, ids []uint) (map[uint]ticket.Stats, error) {
	stats := make(map[uint]ticket.Stats, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}
	for _, id := range ids {
		stats[id] = ticket.Stats{}
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var comments []ticketAggregateRow
	err := tx.Model(&models.CommentModel{}).
		Select("ticket_id, COUNT(*) AS total").
		Where("ticket_id IN ?", ids).
		Group("ticket_id").
		Scan(&comments).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate comment counts", "error", err)
		return nil, fmt.Errorf("failed to aggregate comment counts: %w", err)
	}

	var votes []ticketAggregateRow
	err = tx.Model(&models.VoteModel{}).
		Select("ticket_id, "+voteScoreExpr+" AS total").
		Where("ticket_id IN ?", ids).
		Group("ticket_id").
		Scan(&votes).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate vote scores", "error", err)
		return nil, fmt.Errorf("failed to aggregate vote scores: %w", err)
	}

	for _, row := range comments {
		s := stats[row.TicketID]
		s.CommentCount = row.Total
		stats[row.TicketID] = s
	}
	for _, row := range votes {
		s := stats[row.TicketID]
		s.VoteScore = row.Total
		stats[row.TicketID] = s
	}
	return stats, nil
}
