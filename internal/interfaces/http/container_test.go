package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/infrastructure/config"
	"github.com/qreserve/qreserve/internal/infrastructure/database"
	"github.com/qreserve/qreserve/internal/infrastructure/migration"
	sharedConfig "github.com/qreserve/qreserve/internal/shared/config"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t         *testing.T
	container *Container
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(&sharedConfig.DatabaseConfig{Driver: "sqlite", Database: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := logger.NewNopLogger()
	require.NoError(t, migration.NewAutoMigrateStrategy(log).Migrate(context.Background(), db))

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{Mode: gin.TestMode, BaseURL: "http://localhost:8000"},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT:      sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 30, RefreshExpDays: 7},
		},
		Notification: sharedConfig.NotificationConfig{Driver: "noop"},
		Upload: sharedConfig.UploadConfig{
			Dir:               t.TempDir(),
			MaxFileSize:       1024,
			AllowedExtensions: []string{".txt", ".png"},
		},
	}

	c, err := NewContainer(db, cfg, log)
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	c.SetupRoutes()

	return &testServer{t: t, container: c}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, *apiEnvelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) (int, *apiEnvelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.container.Engine().ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, &env
}

// register creates an account, optionally promotes it, and returns an access
// token issued after the promotion.
func (s *testServer) register(email, role string) (uint, string) {
	s.t.Helper()

	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  "correct-horse",
		"full_name": "Test " + role,
	})
	require.Equal(s.t, http.StatusOK, code, "register %s", email)

	var user struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &user))

	if role != "end_user" {
		require.NoError(s.t, s.container.db.Exec("UPDATE users SET role = ? WHERE id = ?", role, user.ID).Error)
	}

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(s.t, http.StatusOK, code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(s.t, tokens.AccessToken)
	return user.ID, tokens.AccessToken
}

func TestRoutes_Health(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestRoutes_TicketLifecycle(t *testing.T) {
	s := newTestServer(t)

	_, adminToken := s.register("admin@example.com", "admin")
	agentID, agentToken := s.register("agent@example.com", "agent")
	_, aliceToken := s.register("alice@example.com", "end_user")
	_, bobToken := s.register("bob@example.com", "end_user")

	// Categories: admin only writes, anyone reads.
	code, _ := s.do(http.MethodPost, "/api/v1/categories", aliceToken, map[string]string{"name": "Hardware"})
	require.Equal(t, http.StatusForbidden, code)

	code, env := s.do(http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Hardware"})
	require.Equal(t, http.StatusOK, code)
	var category struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, _ = s.do(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, code)

	// Alice opens a ticket.
	code, env = s.do(http.MethodPost, "/api/v1/tickets", aliceToken, map[string]interface{}{
		"subject":     "Printer jammed",
		"description": "Paper stuck in **tray 2**",
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusOK, code)
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "open", created.Status)
	ticketPath := fmt.Sprintf("/api/v1/tickets/%d", created.ID)

	// Bob cannot see it, the agent can.
	code, _ = s.do(http.MethodGet, ticketPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, ticketPath, agentToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// Only staff change workflow fields.
	code, _ = s.do(http.MethodPatch, ticketPath, aliceToken, map[string]interface{}{"status": "closed"})
	assert.Equal(t, http.StatusForbidden, code)
	code, env = s.do(http.MethodPatch, ticketPath, agentToken, map[string]interface{}{
		"status":      "in_progress",
		"assignee_id": agentID,
	})
	require.Equal(t, http.StatusOK, code)
	var updated struct {
		Status     string `json:"status"`
		AssigneeID *uint  `json:"assignee_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "in_progress", updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, agentID, *updated.AssigneeID)

	// Voting toggles.
	code, env = s.do(http.MethodPost, ticketPath+"/vote?vote_type=up", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var vote struct {
		VoteScore int64 `json:"vote_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &vote))
	assert.Equal(t, int64(1), vote.VoteScore)

	code, env = s.do(http.MethodPost, ticketPath+"/vote?vote_type=up", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &vote))
	assert.Equal(t, int64(0), vote.VoteScore)

	// Threaded comments.
	code, env = s.do(http.MethodPost, "/api/v1/comments", agentToken, map[string]interface{}{
		"ticket_id": created.ID,
		"content":   "Have you tried reseating the tray?",
	})
	require.Equal(t, http.StatusOK, code)
	var root struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &root))

	code, _ = s.do(http.MethodPost, "/api/v1/comments", aliceToken, map[string]interface{}{
		"ticket_id": created.ID,
		"parent_id": root.ID,
		"content":   "That fixed it",
	})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/comments/ticket/%d", created.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var tree []struct {
		ID      uint `json:"id"`
		Replies []struct {
			Content string `json:"content"`
		} `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "That fixed it", tree[0].Replies[0].Content)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/comments/%d", root.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Bob's list does not include Alice's ticket.
	code, env = s.do(http.MethodGet, "/api/v1/tickets", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(0), page.Total)

	// The category is now referenced and cannot be deleted.
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", category.ID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestRoutes_Attachments(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register("alice@example.com", "end_user")

	code, env := s.do(http.MethodPost, "/api/v1/tickets", aliceToken, map[string]interface{}{
		"subject":     "VPN drops",
		"description": "Log attached",
	})
	require.Equal(t, http.StatusOK, code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	base := fmt.Sprintf("/api/v1/tickets/%d/attachments", created.ID)

	upload := func(filename string, content []byte) int {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, base, body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+aliceToken)
		code, _ := s.serve(req)
		return code
	}

	assert.Equal(t, http.StatusOK, upload("vpn.txt", []byte("connection reset")))
	assert.Equal(t, http.StatusBadRequest, upload("vpn.exe", []byte("MZ")))
	assert.Equal(t, http.StatusBadRequest, upload("big.txt", bytes.Repeat([]byte("a"), 2048)))

	code, env = s.do(http.MethodGet, base, aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var attachments []struct {
		ID       uint   `json:"id"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &attachments))
	require.Len(t, attachments, 1)
	assert.Equal(t, "vpn.txt", attachments[0].Filename)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("%s/%d", base, attachments[0].ID), nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	w := httptest.NewRecorder()
	s.container.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connection reset", w.Body.String())
}

func TestRoutes_UsersRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register("alice@example.com", "end_user")
	_, adminToken := s.register("admin@example.com", "admin")

	code, _ := s.do(http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Total)
}

func TestRoutes_AccountChangesApplyToIssuedTokens(t *testing.T) {
	s := newTestServer(t)
	adminID, adminToken := s.register("admin@example.com", "admin")
	aliceID, aliceToken := s.register("alice@example.com", "end_user")

	code, _ := s.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", aliceID), adminToken, map[string]interface{}{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/api/v1/tickets", aliceToken, map[string]interface{}{
		"subject":     "Still here?",
		"description": "Deactivated accounts must not open tickets",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	require.NoError(t, s.container.db.Exec("UPDATE users SET role = ? WHERE id = ?", "end_user", adminID).Error)
	code, _ = s.do(http.MethodGet, "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	require.NoError(t, s.container.db.Exec("DELETE FROM users WHERE id = ?", adminID).Error)
	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRoutes_AnyUserVotesOnAnyTicket(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register("alice@example.com", "end_user")
	_, bobToken := s.register("bob@example.com", "end_user")

	code, env := s.do(http.MethodPost, "/api/v1/tickets", aliceToken, map[string]interface{}{
		"subject":     "Dark mode please",
		"description": "",
	})
	require.Equal(t, http.StatusOK, code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/vote?vote_type=up", created.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var vote struct {
		VoteScore int64 `json:"vote_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &vote))
	assert.Equal(t, int64(1), vote.VoteScore)

	code, _ = s.do(http.MethodPost, "/api/v1/tickets/9999/vote?vote_type=up", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRoutes_DeleteUserBlockedByActivity(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.register("admin@example.com", "admin")
	_, aliceToken := s.register("alice@example.com", "end_user")
	agentID, agentToken := s.register("agent@example.com", "agent")
	bobID, bobToken := s.register("bob@example.com", "end_user")
	carolID, _ := s.register("carol@example.com", "end_user")

	code, env := s.do(http.MethodPost, "/api/v1/tickets", aliceToken, map[string]interface{}{
		"subject":     "Badge reader offline",
		"description": "Door 3 ignores my badge",
	})
	require.Equal(t, http.StatusOK, code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, _ = s.do(http.MethodPost, "/api/v1/comments", agentToken, map[string]interface{}{
		"ticket_id": created.ID,
		"content":   "Rebooting the controller",
	})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/vote?vote_type=up", created.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", agentID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, code, "comment author")
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", bobID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, code, "voter")
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", carolID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
}
