package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerType identifies the kind of entity a mailbox belongs to.
type OwnerType string

const (
	OwnerUser     OwnerType = "user"
	OwnerTeam     OwnerType = "team"
	OwnerPlatform OwnerType = "platform"
)

// Valid reports whether the owner type is one of the known values.
func (o OwnerType) Valid() bool {
	switch o {
	case OwnerUser, OwnerTeam, OwnerPlatform:
		return true
	}
	return false
}

// MailboxKind distinguishes inbound from outbound mailboxes.
type MailboxKind string

const (
	KindInbox  MailboxKind = "inbox"
	KindOutbox MailboxKind = "outbox"
)

// Valid reports whether the mailbox kind is one of the known values.
func (k MailboxKind) Valid() bool {
	return k == KindInbox || k == KindOutbox
}

// Mailbox is an addressable endpoint owned by a user or a team.
// Each owner has at most one mailbox per kind; teams only have an inbox
// (team mail is sent from a member's personal outbox). The platform's
// global inbox/outbox are configuration values, not rows in this table.
type Mailbox struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	OwnerType   OwnerType   `gorm:"not null;size:16;uniqueIndex:idx_mailbox_owner_kind" json:"owner_type"`
	OwnerID     string      `gorm:"not null;size:36;uniqueIndex:idx_mailbox_owner_kind" json:"owner_id"`
	Kind        MailboxKind `gorm:"not null;size:16;uniqueIndex:idx_mailbox_owner_kind" json:"kind"`
	NotifyEmail string      `gorm:"size:255" json:"notify_email,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Mailbox
func (Mailbox) TableName() string {
	return "mailboxes"
}

// BeforeCreate assigns a UUID when none was supplied by the caller.
func (m *Mailbox) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
