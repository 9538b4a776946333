package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority levels for a message. The ordering urgent > high > normal > low
// is fixed and used by the priority sort.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the numeric rank used by the priority sort.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// Status is the workflow tag of a message, independent of read state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Message is a single store-and-forward message between two mailboxes.
// Root messages reference themselves through ThreadID; replies inherit the
// root's ThreadID, so thread membership is flat, never a tree.
type Message struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	Subject          string          `gorm:"not null;size:500" json:"subject"`
	Body             string          `gorm:"not null;type:text" json:"body"`
	SenderID         string          `gorm:"not null;size:36;index" json:"sender_id"`
	SenderName       string          `gorm:"size:255" json:"sender_name"`
	SenderEmail      string          `gorm:"size:255" json:"sender_email"`
	FromMailboxID    string          `gorm:"not null;size:36;index" json:"from_mailbox_id"`
	ToMailboxID      string          `gorm:"not null;size:36;index" json:"to_mailbox_id"`
	ThreadID         string          `gorm:"not null;size:36;index" json:"thread_id"`
	ReplyToMessageID string          `gorm:"size:36" json:"reply_to_message_id,omitempty"`
	Priority         Priority        `gorm:"not null;size:16;default:'normal'" json:"priority"`
	Category         string          `gorm:"size:100;index" json:"category,omitempty"`
	Status           Status          `gorm:"not null;size:16;default:'open'" json:"status"`
	IsRead           bool            `gorm:"not null;default:false" json:"is_read"`
	FromAdminOutbox  bool            `gorm:"not null;default:false" json:"from_admin_outbox"`
	Context          json.RawMessage `gorm:"type:jsonb" json:"context,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID (and the self-referential thread id for roots)
// when the caller did not set them.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.ThreadID == "" {
		m.ThreadID = m.ID
	}
	return nil
}

// IsThreadRoot reports whether this message opened its thread.
func (m *Message) IsThreadRoot() bool {
	return m.ID == m.ThreadID
}
