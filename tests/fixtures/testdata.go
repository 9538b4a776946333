// Package fixtures provides builders for test data.
package fixtures

import (
	"time"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

// MailboxBuilder creates test Mailbox instances with fluent API
type MailboxBuilder struct {
	mailbox models.Mailbox
}

// NewMailboxBuilder creates a new MailboxBuilder with sensible defaults
func NewMailboxBuilder() *MailboxBuilder {
	return &MailboxBuilder{
		mailbox: models.Mailbox{
			ID:        "mbx-1",
			OwnerType: models.OwnerUser,
			OwnerID:   "user-1",
			Kind:      models.KindInbox,
			CreatedAt: time.Now(),
		},
	}
}

// WithID sets the mailbox ID
func (b *MailboxBuilder) WithID(id string) *MailboxBuilder {
	b.mailbox.ID = id
	return b
}

// WithOwner sets the owner type and ID
func (b *MailboxBuilder) WithOwner(ownerType models.OwnerType, ownerID string) *MailboxBuilder {
	b.mailbox.OwnerType = ownerType
	b.mailbox.OwnerID = ownerID
	return b
}

// WithKind sets the mailbox kind
func (b *MailboxBuilder) WithKind(kind models.MailboxKind) *MailboxBuilder {
	b.mailbox.Kind = kind
	return b
}

// WithNotifyEmail sets the notification email
func (b *MailboxBuilder) WithNotifyEmail(email string) *MailboxBuilder {
	b.mailbox.NotifyEmail = email
	return b
}

// Build returns the constructed Mailbox
func (b *MailboxBuilder) Build() *models.Mailbox {
	return &b.mailbox
}

// BuildValue returns the constructed Mailbox as a value (not pointer)
func (b *MailboxBuilder) BuildValue() models.Mailbox {
	return b.mailbox
}

// MessageBuilder creates test Message instances with fluent API
type MessageBuilder struct {
	message models.Message
}

// NewMessageBuilder creates a new MessageBuilder with sensible defaults.
// The default message is a thread root.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{
		message: models.Message{
			ID:            "msg-1",
			Subject:       "Test Subject",
			Body:          "Test body.",
			SenderID:      "user-1",
			SenderName:    "Test Sender",
			SenderEmail:   "sender@example.com",
			FromMailboxID: "mbx-out-1",
			ToMailboxID:   "mbx-1",
			ThreadID:      "msg-1",
			Priority:      models.PriorityNormal,
			Status:        models.StatusOpen,
			CreatedAt:     time.Now(),
		},
	}
}

// WithID sets the message ID. Thread roots should also update the thread ID.
func (b *MessageBuilder) WithID(id string) *MessageBuilder {
	b.message.ID = id
	return b
}

// WithThread sets the thread ID and reply-to reference, turning the message
// into a reply.
func (b *MessageBuilder) WithThread(threadID, replyToID string) *MessageBuilder {
	b.message.ThreadID = threadID
	b.message.ReplyToMessageID = replyToID
	return b
}

// WithSender sets the sender identity
func (b *MessageBuilder) WithSender(id, name, email string) *MessageBuilder {
	b.message.SenderID = id
	b.message.SenderName = name
	b.message.SenderEmail = email
	return b
}

// WithRoute sets the source and destination mailboxes
func (b *MessageBuilder) WithRoute(fromMailboxID, toMailboxID string) *MessageBuilder {
	b.message.FromMailboxID = fromMailboxID
	b.message.ToMailboxID = toMailboxID
	return b
}

// WithSubject sets the message subject
func (b *MessageBuilder) WithSubject(subject string) *MessageBuilder {
	b.message.Subject = subject
	return b
}

// WithBody sets the message body
func (b *MessageBuilder) WithBody(body string) *MessageBuilder {
	b.message.Body = body
	return b
}

// WithPriority sets the priority
func (b *MessageBuilder) WithPriority(priority models.Priority) *MessageBuilder {
	b.message.Priority = priority
	return b
}

// WithCategory sets the category tag
func (b *MessageBuilder) WithCategory(category string) *MessageBuilder {
	b.message.Category = category
	return b
}

// WithStatus sets the workflow status
func (b *MessageBuilder) WithStatus(status models.Status) *MessageBuilder {
	b.message.Status = status
	return b
}

// WithRead sets the read flag
func (b *MessageBuilder) WithRead(isRead bool) *MessageBuilder {
	b.message.IsRead = isRead
	return b
}

// WithFromAdminOutbox marks the message as an official admin message
func (b *MessageBuilder) WithFromAdminOutbox(official bool) *MessageBuilder {
	b.message.FromAdminOutbox = official
	return b
}

// WithCreatedAt sets the created timestamp
func (b *MessageBuilder) WithCreatedAt(t time.Time) *MessageBuilder {
	b.message.CreatedAt = t
	return b
}

// Build returns the constructed Message
func (b *MessageBuilder) Build() *models.Message {
	return &b.message
}

// BuildValue returns the constructed Message as a value (not pointer)
func (b *MessageBuilder) BuildValue() models.Message {
	return b.message
}

// NewActor creates a regular test actor
func NewActor(id, name string) models.Actor {
	return models.Actor{
		ID:    id,
		Name:  name,
		Email: id + "@example.com",
	}
}

// NewAdminActor creates a platform administrator test actor
func NewAdminActor(id, name string) models.Actor {
	actor := NewActor(id, name)
	actor.Admin = true
	return actor
}

// CreateThread creates a root message plus count replies, newest last.
// Replies alternate direction so both participants appear as senders.
func CreateThread(rootID, aliceOutbox, bobInbox, bobOutbox, aliceInbox string, count int) []models.Message {
	messages := make([]models.Message, 0, count+1)
	base := time.Now().Add(-time.Duration(count+1) * time.Hour)

	root := NewMessageBuilder().
		WithID(rootID).
		WithRoute(aliceOutbox, bobInbox).
		WithCreatedAt(base).
		BuildValue()
	root.ThreadID = rootID
	messages = append(messages, root)

	for i := 0; i < count; i++ {
		b := NewMessageBuilder().
			WithID(rootID + "-r" + string(rune('1'+i))).
			WithThread(rootID, rootID).
			WithCreatedAt(base.Add(time.Duration(i+1) * time.Hour))
		if i%2 == 0 {
			b = b.WithSender("user-2", "Bob", "bob@example.com").WithRoute(bobOutbox, aliceInbox)
		} else {
			b = b.WithRoute(aliceOutbox, bobInbox)
		}
		messages = append(messages, b.BuildValue())
	}
	return messages
}
