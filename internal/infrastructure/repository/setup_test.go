package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/domain/user"
	uservo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fixtures struct {
	db          *gorm.DB
	users       user.Repository
	categories  category.Repository
	tickets     ticket.Repository
	comments    ticket.CommentRepository
	votes       ticket.VoteRepository
	attachments ticket.AttachmentRepository
}

func newFixtures(t *testing.T) *fixtures {
	db := setupTestDB(t)
	log := logger.NewNopLogger()
	return &fixtures{
		db:          db,
		users:       NewUserRepository(db, log),
		categories:  NewCategoryRepository(db, log),
		tickets:     NewTicketRepository(db, log),
		comments:    NewCommentRepository(db, log),
		votes:       NewVoteRepository(db, log),
		attachments: NewAttachmentRepository(db, log),
	}
}

func (f *fixtures) createUser(t *testing.T, email string, role authorization.UserRole) *user.User {
	t.Helper()
	e, err := uservo.NewEmail(email)
	require.NoError(t, err)
	name, err := uservo.NewFullName("Test User")
	require.NoError(t, err)
	u, err := user.NewUser(e, name, "$2a$10$hash", role)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixtures) createCategory(t *testing.T, name string) *category.Category {
	t.Helper()
	c, err := category.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}

func (f *fixtures) createTicket(t *testing.T, subject string, ownerID uint, categoryID *uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(subject, fmt.Sprintf("description of %s", subject), vo.PriorityMedium, ownerID, categoryID)
	require.NoError(t, err)
	require.NoError(t, f.tickets.Create(context.Background(), tk))
	return tk
}

// insertTicket writes a ticket row with explicit timestamps, for ordering tests.
func (f *fixtures) insertTicket(t *testing.T, subject string, ownerID uint, priority vo.Priority, updatedAt time.Time) *ticket.Ticket {
	t.Helper()
	model := &models.TicketModel{
		Subject:      subject,
		Description:  "body",
		Status:       vo.StatusOpen.String(),
		Priority:     priority.String(),
		OwnerID:      ownerID,
		CreatedAt:    updatedAt.UnixMilli(),
		UpdatedAt:    updatedAt.UnixMilli(),
		LastActivity: updatedAt.UnixMilli(),
	}
	require.NoError(t, f.db.Create(model).Error)
	tk, err := f.tickets.GetByID(context.Background(), model.ID)
	require.NoError(t, err)
	return tk
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(s string) *string {
	return &s
}
