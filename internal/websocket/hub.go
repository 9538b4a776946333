package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSubscribe      MessageType = "subscribe"
	MessageTypeUnsubscribe    MessageType = "unsubscribe"
	MessageTypeMessageCreated MessageType = "message_created"
	MessageTypeThreadRead     MessageType = "thread_read"
	MessageTypeThreadDeleted  MessageType = "thread_deleted"
	MessageTypeError          MessageType = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      MessageType `json:"type"`
	MailboxID string      `json:"mailbox_id,omitempty"`
	ThreadID  string      `json:"thread_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// MessageCreatedPayload summarizes a newly delivered message for
// subscribers. The body stays out of the notification.
type MessageCreatedPayload struct {
	ID              string `json:"id"`
	ThreadID        string `json:"thread_id"`
	SenderID        string `json:"sender_id"`
	SenderName      string `json:"sender_name,omitempty"`
	Subject         string `json:"subject"`
	Priority        string `json:"priority"`
	Category        string `json:"category,omitempty"`
	FromAdminOutbox bool   `json:"from_admin_outbox"`
	CreatedAt       string `json:"created_at"`
}

// Hub maintains the set of active clients and fans mailbox events out to
// their subscribers.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Mailbox subscriptions: mailboxID -> set of clients
	subscriptions map[string]map[*Client]bool

	register           chan *Client
	unregister         chan *Client
	subscribe          chan *subscriptionRequest
	unsubscribeMailbox chan *subscriptionRequest
	broadcast          chan *broadcastMessage

	mu sync.RWMutex

	logger *slog.Logger
}

type subscriptionRequest struct {
	client    *Client
	mailboxID string
}

type broadcastMessage struct {
	mailboxID string
	message   []byte
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:            make(map[*Client]bool),
		subscriptions:      make(map[string]map[*Client]bool),
		register:           make(chan *Client),
		unregister:         make(chan *Client),
		subscribe:          make(chan *subscriptionRequest),
		unsubscribeMailbox: make(chan *subscriptionRequest),
		broadcast:          make(chan *broadcastMessage, 256),
		logger:             logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client registered")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				// Remove from all subscriptions
				for mailboxID, subscribers := range h.subscriptions {
					delete(subscribers, client)
					if len(subscribers) == 0 {
						delete(h.subscriptions, mailboxID)
					}
				}
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unregistered")
			}

		case req := <-h.subscribe:
			h.mu.Lock()
			if h.subscriptions[req.mailboxID] == nil {
				h.subscriptions[req.mailboxID] = make(map[*Client]bool)
			}
			h.subscriptions[req.mailboxID][req.client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client subscribed to mailbox", slog.String("mailbox_id", req.mailboxID))
			}

		case req := <-h.unsubscribeMailbox:
			h.mu.Lock()
			if subscribers, ok := h.subscriptions[req.mailboxID]; ok {
				delete(subscribers, req.client)
				if len(subscribers) == 0 {
					delete(h.subscriptions, req.mailboxID)
				}
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unsubscribed from mailbox", slog.String("mailbox_id", req.mailboxID))
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			subscribers := h.subscriptions[msg.mailboxID]
			for client := range subscribers {
				select {
				case client.send <- msg.message:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe subscribes a client to a mailbox
func (h *Hub) Subscribe(client *Client, mailboxID string) {
	h.subscribe <- &subscriptionRequest{client: client, mailboxID: mailboxID}
}

// Unsubscribe unsubscribes a client from a mailbox
func (h *Hub) Unsubscribe(client *Client, mailboxID string) {
	h.unsubscribeMailbox <- &subscriptionRequest{client: client, mailboxID: mailboxID}
}

// MessageCreated notifies the recipient mailbox's subscribers of a newly
// delivered message.
func (h *Hub) MessageCreated(mailboxID string, message *models.Message) {
	h.send(mailboxID, WSMessage{
		Type:      MessageTypeMessageCreated,
		MailboxID: mailboxID,
		ThreadID:  message.ThreadID,
		Payload: &MessageCreatedPayload{
			ID:              message.ID,
			ThreadID:        message.ThreadID,
			SenderID:        message.SenderID,
			SenderName:      message.SenderName,
			Subject:         message.Subject,
			Priority:        string(message.Priority),
			Category:        message.Category,
			FromAdminOutbox: message.FromAdminOutbox,
			CreatedAt:       message.CreatedAt.Format(time.RFC3339Nano),
		},
	})
}

// ThreadRead notifies affected mailboxes that a thread was opened.
func (h *Hub) ThreadRead(threadID string, mailboxIDs []string) {
	for _, mailboxID := range mailboxIDs {
		h.send(mailboxID, WSMessage{
			Type:      MessageTypeThreadRead,
			MailboxID: mailboxID,
			ThreadID:  threadID,
		})
	}
}

// ThreadDeleted notifies affected mailboxes that a thread was removed.
func (h *Hub) ThreadDeleted(threadID string, mailboxIDs []string) {
	for _, mailboxID := range mailboxIDs {
		h.send(mailboxID, WSMessage{
			Type:      MessageTypeThreadDeleted,
			MailboxID: mailboxID,
			ThreadID:  threadID,
		})
	}
}

// send marshals and queues an event for one mailbox's subscribers.
func (h *Hub) send(mailboxID string, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to marshal broadcast message", slog.Any("error", err))
		}
		return
	}

	h.broadcast <- &broadcastMessage{
		mailboxID: mailboxID,
		message:   data,
	}
}
