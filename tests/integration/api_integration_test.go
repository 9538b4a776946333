//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/api"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/middleware"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

const (
	platformInboxID  = "00000000-0000-0000-0000-00000000in01"
	platformOutboxID = "00000000-0000-0000-0000-0000000out01"
)

// APIIntegrationTestSuite exercises the full HTTP surface against a real
// PostgreSQL instance.
type APIIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	db        *gorm.DB
	router    *echo.Echo
}

func (s *APIIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "messaging_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(s.T(), err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=messaging_test sslmode=disable",
		host, port.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err)
	s.db = db

	require.NoError(s.T(), db.AutoMigrate(&models.Mailbox{}, &models.Message{}))

	s.router = api.NewRouter(&api.RouterConfig{
		DB:               db,
		PlatformInboxID:  platformInboxID,
		PlatformOutboxID: platformOutboxID,
		RateLimit:        1000,
		RateBurst:        1000,
	})
}

func (s *APIIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func (s *APIIntegrationTestSuite) SetupTest() {
	s.db.Exec("TRUNCATE TABLE messages, mailboxes RESTART IDENTITY CASCADE")
}

// request performs an HTTP request against the router with actor identity
// headers attached.
func (s *APIIntegrationTestSuite) request(method, path string, body interface{}, actor *models.Actor) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if actor != nil {
		req.Header.Set(middleware.HeaderActorID, actor.ID)
		req.Header.Set(middleware.HeaderActorName, actor.Name)
		req.Header.Set(middleware.HeaderActorEmail, actor.Email)
		if actor.Admin {
			req.Header.Set(middleware.HeaderActorAdmin, "true")
		}
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationTestSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *APIIntegrationTestSuite) createMailbox(ownerType, ownerID, kind string) string {
	rec := s.request(http.MethodPost, "/api/mailboxes", map[string]string{
		"owner_type": ownerType,
		"owner_id":   ownerID,
		"kind":       kind,
	}, nil)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	data := s.decode(rec)["data"].(map[string]interface{})
	return data["id"].(string)
}

func (s *APIIntegrationTestSuite) TestHealthEndpoints() {
	rec := s.request(http.MethodGet, "/health", nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/ready", nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *APIIntegrationTestSuite) TestMailboxLifecycle() {
	id := s.createMailbox("user", "alice", "inbox")

	rec := s.request(http.MethodGet, "/api/mailboxes/"+id, nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	// Second inbox for the same owner conflicts
	rec = s.request(http.MethodPost, "/api/mailboxes", map[string]string{
		"owner_type": "user", "owner_id": "alice", "kind": "inbox",
	}, nil)
	assert.Equal(s.T(), http.StatusConflict, rec.Code)

	rec = s.request(http.MethodGet, "/api/owners/user/alice/mailboxes", nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.request(http.MethodDelete, "/api/mailboxes/"+id, nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodGet, "/api/mailboxes/"+id, nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationTestSuite) TestMessageFlow() {
	alice := &models.Actor{ID: "alice", Name: "Alice", Email: "alice@example.com"}
	bob := &models.Actor{ID: "bob", Name: "Bob", Email: "bob@example.com"}

	s.createMailbox("user", "alice", "inbox")
	s.createMailbox("user", "alice", "outbox")
	bobInbox := s.createMailbox("user", "bob", "inbox")
	s.createMailbox("user", "bob", "outbox")

	// Alice composes a message to Bob
	rec := s.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"subject":    "Site down",
		"message":    "The staging site returns 502.",
		"to_user_id": "bob",
		"priority":   "high",
	}, alice)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	data := s.decode(rec)["data"].(map[string]interface{})
	messageID := data["id"].(string)
	threadID := data["thread_id"].(string)
	assert.Equal(s.T(), messageID, threadID)
	assert.Equal(s.T(), bobInbox, data["to_mailbox_id"])

	// Bob sees one unread thread
	rec = s.request(http.MethodGet, "/api/mailboxes/"+bobInbox+"/unread", nil, bob)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	unread := s.decode(rec)["data"].(map[string]interface{})
	assert.Equal(s.T(), float64(1), unread["unread_count"])

	rec = s.request(http.MethodGet, "/api/mailboxes/"+bobInbox+"/threads?folder=inbox", nil, bob)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	threads := s.decode(rec)["data"].([]interface{})
	require.Len(s.T(), threads, 1)

	// Bob opens the thread and marks it read
	rec = s.request(http.MethodPatch, "/api/threads/"+threadID+"/read", nil, bob)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/mailboxes/"+bobInbox+"/unread", nil, bob)
	unread = s.decode(rec)["data"].(map[string]interface{})
	assert.Equal(s.T(), float64(0), unread["unread_count"])

	// Bob replies; the reply lands in Alice's inbox and reopens the thread
	rec = s.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"subject":             "Re: Site down",
		"message":             "Restarted the pool, looks healthy now.",
		"reply_to_message_id": messageID,
		"thread_id":           threadID,
	}, bob)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	reply := s.decode(rec)["data"].(map[string]interface{})
	assert.Equal(s.T(), threadID, reply["thread_id"])

	rec = s.request(http.MethodGet, "/api/threads/"+threadID, nil, bob)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	thread := s.decode(rec)["data"].(map[string]interface{})
	messages := thread["messages"].([]interface{})
	assert.Len(s.T(), messages, 2)

	// Deleting the thread removes every message in it
	rec = s.request(http.MethodDelete, "/api/threads/"+threadID, nil, bob)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodGet, "/api/threads/"+threadID, nil, bob)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *APIIntegrationTestSuite) TestAdminMessageToUser() {
	admin := &models.Actor{ID: "root", Name: "Root", Email: "root@example.com", Admin: true}

	s.createMailbox("user", "carol", "inbox")
	s.createMailbox("user", "carol", "outbox")

	rec := s.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"subject":         "Maintenance window",
		"message":         "The platform goes down Sunday 02:00 UTC.",
		"to_user_id":      "carol",
		"is_admin_action": true,
	}, admin)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	data := s.decode(rec)["data"].(map[string]interface{})
	assert.Equal(s.T(), true, data["from_admin_outbox"])
	assert.Equal(s.T(), platformOutboxID, data["from_mailbox_id"])
}

func (s *APIIntegrationTestSuite) TestAdminActionRequiresAdmin() {
	user := &models.Actor{ID: "mallory", Name: "Mallory", Email: "mallory@example.com"}

	s.createMailbox("user", "carol", "inbox")

	rec := s.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"subject":         "Fake notice",
		"message":         "Pretending to be the platform.",
		"to_user_id":      "carol",
		"is_admin_action": true,
	}, user)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)
}

func (s *APIIntegrationTestSuite) TestSendWithoutActorRejected() {
	rec := s.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"subject":    "No identity",
		"message":    "This request carries no actor headers.",
		"to_user_id": "bob",
	}, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(APIIntegrationTestSuite))
}
