package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	tvo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/domain/user"
	uvo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
)

type mockTicketRepository struct {
	CreateFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc          func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc         func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc            func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error)
	StatsFunc           func(ctx context.Context, ids []uint) (map[uint]ticket.Stats, error)
	CountByCategoryFunc func(ctx context.Context, categoryID uint) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, ids []uint) (map[uint]ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, ids)
	}
	return map[uint]ticket.Stats{}, nil
}

func (m *mockTicketRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx, categoryID)
	}
	return 0, nil
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	GetByIDFunc      func(ctx context.Context, id uint) (*ticket.Comment, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockVoteRepository struct {
	CreateFunc             func(ctx context.Context, v *ticket.Vote) error
	UpdateFunc             func(ctx context.Context, v *ticket.Vote) error
	DeleteFunc             func(ctx context.Context, id uint) error
	GetByTicketAndUserFunc func(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error)
	ScoreFunc              func(ctx context.Context, ticketID uint) (int64, error)
}

func (m *mockVoteRepository) Create(ctx context.Context, v *ticket.Vote) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return v.SetID(1)
}

func (m *mockVoteRepository) Update(ctx context.Context, v *ticket.Vote) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

func (m *mockVoteRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockVoteRepository) GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	if m.GetByTicketAndUserFunc != nil {
		return m.GetByTicketAndUserFunc(ctx, ticketID, userID)
	}
	return nil, nil
}

func (m *mockVoteRepository) Score(ctx context.Context, ticketID uint) (int64, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockAttachmentRepository struct {
	CreateFunc       func(ctx context.Context, a *ticket.Attachment) error
	GetByIDFunc      func(ctx context.Context, id uint) (*ticket.Attachment, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
}

func (m *mockAttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

// mockUserRepository serves users from a map keyed by id. A non-nil
// getByIDsErr fails batch lookups.
type mockUserRepository struct {
	users       map[uint]*user.User
	getByIDsErr error
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error      { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.getByIDsErr != nil {
		return nil, m.getByIDsErr
	}
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return nil, 0, nil
}

type mockCategoryRepository struct {
	categories map[uint]*category.Category
}

func newMockCategoryRepository(categories ...*category.Category) *mockCategoryRepository {
	m := &mockCategoryRepository{categories: make(map[uint]*category.Category)}
	for _, c := range categories {
		m.categories[c.ID()] = c
	}
	return m
}

func (m *mockCategoryRepository) Create(ctx context.Context, c *category.Category) error { return nil }
func (m *mockCategoryRepository) Update(ctx context.Context, c *category.Category) error { return nil }
func (m *mockCategoryRepository) Delete(ctx context.Context, id uint) error              { return nil }

func (m *mockCategoryRepository) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepository) List(ctx context.Context, includeInactive bool) ([]*category.Category, error) {
	return nil, nil
}

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []*notification.Message
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, msg *notification.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

func (d *recordingDispatcher) sent() []*notification.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*notification.Message(nil), d.messages...)
}

type mockFileStore struct {
	SaveFunc func(ctx context.Context, ticketID uint, originalName string, r io.Reader, maxSize int64) (string, int64, error)
	OpenFunc func(path string) (io.ReadCloser, error)
	removed  []string
}

func (m *mockFileStore) Save(ctx context.Context, ticketID uint, originalName string, r io.Reader, maxSize int64) (string, int64, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ticketID, originalName, r, maxSize)
	}
	n, err := io.Copy(io.Discard, r)
	return "1/stored.bin", n, err
}

func (m *mockFileStore) Open(path string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	return io.NopCloser(strings.NewReader("content")), nil
}

func (m *mockFileStore) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}

// upperRenderer makes rendered output easy to tell apart from the source.
type upperRenderer struct{}

func (upperRenderer) Render(source string) string {
	return "<p>" + strings.ToUpper(source) + "</p>"
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUser(id uint, role authorization.UserRole) *user.User {
	email, err := uvo.NewEmail(fmt.Sprintf("user%d@example.com", id))
	if err != nil {
		panic(err)
	}
	name, err := uvo.NewFullName("User " + string(role))
	if err != nil {
		panic(err)
	}
	u, err := user.ReconstructUser(id, email, name, "hash", role, true, user.DefaultPreferences(), testTime, testTime)
	if err != nil {
		panic(err)
	}
	return u
}

func newTestTicket(id, ownerID uint) *ticket.Ticket {
	t, err := ticket.ReconstructTicket(id, "Printer jam", "The **printer** on floor 2 is jammed",
		tvo.StatusOpen, tvo.PriorityMedium, ownerID, nil, nil, testTime, testTime, testTime)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestCategory(id uint, name string, active bool) *category.Category {
	c, err := category.ReconstructCategory(id, name, "", active, testTime, testTime)
	if err != nil {
		panic(err)
	}
	return c
}

func newTestComment(id, ticketID, authorID uint, parentID *uint, content string, createdAt time.Time) *ticket.Comment {
	c, err := ticket.ReconstructComment(id, ticketID, authorID, parentID, content, createdAt, createdAt)
	if err != nil {
		panic(err)
	}
	return c
}

func ticketRepoWith(tickets ...*ticket.Ticket) *mockTicketRepository {
	byID := make(map[uint]*ticket.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID()] = t
	}
	return &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return byID[id], nil
		},
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}
