package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	hub := NewHub(nil)
	client := NewClient(hub, nil, nil)

	assert.NotNil(t, client)
	assert.Equal(t, hub, client.hub)
	assert.NotNil(t, client.send)
}

func TestClient_HandleMessage_Subscribe(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, nil)
	hub.Register(client)

	data, err := json.Marshal(WSMessage{Type: MessageTypeSubscribe, MailboxID: "mbx-1"})
	require.NoError(t, err)

	client.handleMessage(data)
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.subscriptions["mbx-1"]
	hub.mu.RUnlock()
	assert.True(t, exists)
}

func TestClient_HandleMessage_Unsubscribe(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, nil)
	hub.Register(client)
	hub.Subscribe(client, "mbx-1")

	data, err := json.Marshal(WSMessage{Type: MessageTypeUnsubscribe, MailboxID: "mbx-1"})
	require.NoError(t, err)

	client.handleMessage(data)
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	subscribers, exists := hub.subscriptions["mbx-1"]
	hub.mu.RUnlock()
	if exists {
		_, stillSubscribed := subscribers[client]
		assert.False(t, stillSubscribed)
	}
}

func expectClientError(t *testing.T, client *Client, fragment string) {
	t.Helper()

	select {
	case data := <-client.send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MessageTypeError, msg.Type)
		assert.Contains(t, msg.Error, fragment)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected an error message")
	}
}

func TestClient_HandleMessage_InvalidJSON(t *testing.T) {
	client := NewClient(NewHub(nil), nil, nil)

	client.handleMessage([]byte("not json"))

	expectClientError(t, client, "invalid message format")
}

func TestClient_HandleMessage_UnknownType(t *testing.T) {
	client := NewClient(NewHub(nil), nil, nil)

	data, err := json.Marshal(WSMessage{Type: "teleport"})
	require.NoError(t, err)
	client.handleMessage(data)

	expectClientError(t, client, "unknown message type")
}

func TestClient_HandleMessage_SubscribeWithoutMailbox(t *testing.T) {
	client := NewClient(NewHub(nil), nil, nil)

	data, err := json.Marshal(WSMessage{Type: MessageTypeSubscribe})
	require.NoError(t, err)
	client.handleMessage(data)

	expectClientError(t, client, "mailbox_id is required")
}

func TestClient_SendError(t *testing.T) {
	client := NewClient(NewHub(nil), nil, nil)

	client.sendError("something broke")

	expectClientError(t, client, "something broke")
}

func TestClient_SendError_DropsWhenBufferFull(t *testing.T) {
	client := NewClient(NewHub(nil), nil, nil)

	// Fill past the buffer; sendError must never block
	for i := 0; i < 300; i++ {
		client.sendError("overflow")
	}

	count := 0
	for {
		select {
		case <-client.send:
			count++
		default:
			assert.Equal(t, 256, count)
			return
		}
	}
}
