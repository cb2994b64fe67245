package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/db"
)

// UserReferenceCounter counts rows in other tables that point at a user.
type UserReferenceCounter struct {
	db *gorm.DB
}

func NewUserReferenceCounter(db *gorm.DB) *UserReferenceCounter {
	return &UserReferenceCounter{db: db}
}

// CountUserReferences sums tickets owned or assigned, comments authored,
// votes cast and attachments uploaded by the user.
func (r *UserReferenceCounter) CountUserReferences(ctx context.Context, userID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	queries := []struct {
		table string
		query *gorm.DB
	}{
		{"tickets", tx.Model(&models.TicketModel{}).Where("owner_id = ? OR assignee_id = ?", userID, userID)},
		{"comments", tx.Model(&models.CommentModel{}).Where("author_id = ?", userID)},
		{"votes", tx.Model(&models.VoteModel{}).Where("user_id = ?", userID)},
		{"attachments", tx.Model(&models.AttachmentModel{}).Where("uploaded_by_id = ?", userID)},
	}

	var total int64
	for _, q := range queries {
		var n int64
		if err := q.query.Count(&n).Error; err != nil {
			return 0, fmt.Errorf("failed to count %s referencing user: %w", q.table, err)
		}
		total += n
	}
	return total, nil
}
