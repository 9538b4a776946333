package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

func TestNewSecureUpgrader_ValidOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://dashboard.example.com")

	upgrader := NewSecureUpgrader(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")

	assert.True(t, upgrader.CheckOrigin(req))
}

func TestNewSecureUpgrader_InvalidOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	upgrader := NewSecureUpgrader(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://malicious.example.com")

	assert.False(t, upgrader.CheckOrigin(req))
}

func TestNewSecureUpgrader_EmptyOriginIsSameOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	upgrader := NewSecureUpgrader(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)

	assert.True(t, upgrader.CheckOrigin(req))
}

func TestNewSecureUpgrader_DefaultsToLocalhost(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	upgrader := NewSecureUpgrader(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	assert.True(t, upgrader.CheckOrigin(req))
}

func TestNewSecureUpgrader_TrimsAndFiltersOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "  http://localhost:3000 ,, https://dashboard.example.com ,")

	upgrader := NewSecureUpgrader(nil)

	tests := []struct {
		origin   string
		expected bool
	}{
		{"http://localhost:3000", true},
		{"https://dashboard.example.com", true},
		{"https://other.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Header.Set("Origin", tt.origin)
			assert.Equal(t, tt.expected, upgrader.CheckOrigin(req))
		})
	}
}

func TestNewSecureUpgrader_CaseSensitive(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	upgrader := NewSecureUpgrader(nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "HTTP://LOCALHOST:3000")

	assert.False(t, upgrader.CheckOrigin(req))
}

func TestDefaultUpgrader_AllowsAll(t *testing.T) {
	upgrader := DefaultUpgrader()

	for _, origin := range []string{"http://localhost:3000", "http://malicious.example.com", ""} {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		assert.True(t, upgrader.CheckOrigin(req), "origin %q", origin)
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.subscriptions)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

// receive waits for one frame on the client's outbound buffer.
func receive(t *testing.T, client *Client) WSMessage {
	t.Helper()

	select {
	case data := <-client.send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message")
		return WSMessage{}
	}
}

func subscribedClient(t *testing.T, hub *Hub, mailboxID string) *Client {
	t.Helper()

	client := NewClient(hub, nil, nil)
	hub.Register(client)
	hub.Subscribe(client, mailboxID)
	return client
}

func TestHub_MessageCreated_ReachesSubscriber(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := subscribedClient(t, hub, "mbx-1")

	hub.MessageCreated("mbx-1", &models.Message{
		ID:         "m-1",
		ThreadID:   "m-1",
		SenderID:   "u-1",
		SenderName: "Alice",
		Subject:    "Site down",
		Priority:   models.PriorityHigh,
		CreatedAt:  time.Now(),
	})

	msg := receive(t, client)
	assert.Equal(t, MessageTypeMessageCreated, msg.Type)
	assert.Equal(t, "mbx-1", msg.MailboxID)
	assert.Equal(t, "m-1", msg.ThreadID)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "m-1", payload["id"])
	assert.Equal(t, "Site down", payload["subject"])
	assert.Equal(t, "high", payload["priority"])
}

func TestHub_MessageCreated_OtherMailboxSilent(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := subscribedClient(t, hub, "mbx-1")

	hub.MessageCreated("mbx-2", &models.Message{ID: "m-1", ThreadID: "m-1", CreatedAt: time.Now()})

	select {
	case <-client.send:
		t.Fatal("subscriber of another mailbox must not receive the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ThreadRead_FansOutToAllMailboxes(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	inbox := subscribedClient(t, hub, "alice-inbox")
	outbox := subscribedClient(t, hub, "bob-outbox")

	hub.ThreadRead("m-1", []string{"alice-inbox", "bob-outbox"})

	msg := receive(t, inbox)
	assert.Equal(t, MessageTypeThreadRead, msg.Type)
	assert.Equal(t, "m-1", msg.ThreadID)

	msg = receive(t, outbox)
	assert.Equal(t, MessageTypeThreadRead, msg.Type)
	assert.Equal(t, "bob-outbox", msg.MailboxID)
}

func TestHub_ThreadDeleted(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := subscribedClient(t, hub, "mbx-1")

	hub.ThreadDeleted("m-9", []string{"mbx-1"})

	msg := receive(t, client)
	assert.Equal(t, MessageTypeThreadDeleted, msg.Type)
	assert.Equal(t, "m-9", msg.ThreadID)
}

func TestHub_BroadcastWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	hub.MessageCreated("mbx-empty", &models.Message{ID: "m-1", ThreadID: "m-1", CreatedAt: time.Now()})
}

func TestHub_UnregisterRemovesSubscriptions(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := subscribedClient(t, hub, "mbx-1")
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.subscriptions["mbx-1"]
	hub.mu.RUnlock()
	assert.False(t, exists)
}
