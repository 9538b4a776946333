// Package mocks provides testify mocks for repository interfaces.
package mocks

import (
	"context"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockMailboxRepository implements repository.MailboxRepository
type MockMailboxRepository struct {
	mock.Mock
}

// Create creates a new mailbox
func (m *MockMailboxRepository) Create(ctx context.Context, mailbox *models.Mailbox) error {
	args := m.Called(ctx, mailbox)
	return args.Error(0)
}

// GetByID retrieves a mailbox by its ID
func (m *MockMailboxRepository) GetByID(ctx context.Context, id string) (*models.Mailbox, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mailbox), args.Error(1)
}

// GetByOwner retrieves the single mailbox of the given kind for an owner
func (m *MockMailboxRepository) GetByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string, kind models.MailboxKind) (*models.Mailbox, error) {
	args := m.Called(ctx, ownerType, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mailbox), args.Error(1)
}

// ListByOwner retrieves all mailboxes belonging to an owner
func (m *MockMailboxRepository) ListByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) ([]models.Mailbox, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mailbox), args.Error(1)
}

// Delete removes a mailbox and its messages
func (m *MockMailboxRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMessageRepository implements repository.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Create persists a newly composed message
func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// CreateReply persists a reply and resets the thread root's read flag
func (m *MockMessageRepository) CreateReply(ctx context.Context, reply *models.Message) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

// GetByID retrieves a message by its ID
func (m *MockMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// ListByMailbox retrieves messages addressed to or sent from a mailbox
func (m *MockMessageRepository) ListByMailbox(ctx context.Context, mailboxID string, outbound bool) ([]models.Message, error) {
	args := m.Called(ctx, mailboxID, outbound)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// ListByThread retrieves every message of a thread
func (m *MockMessageRepository) ListByThread(ctx context.Context, threadID string) ([]models.Message, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MarkThreadRead marks every message of a thread as read
func (m *MockMessageRepository) MarkThreadRead(ctx context.Context, threadID string) (int64, error) {
	args := m.Called(ctx, threadID)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteThread removes every message sharing the thread id
func (m *MockMessageRepository) DeleteThread(ctx context.Context, threadID string) (int64, error) {
	args := m.Called(ctx, threadID)
	return args.Get(0).(int64), args.Error(1)
}

// UpdateStatus changes the workflow status tag of a message
func (m *MockMessageRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// CountUnread counts unread messages addressed to a mailbox
func (m *MockMessageRepository) CountUnread(ctx context.Context, mailboxID string) (int64, error) {
	args := m.Called(ctx, mailboxID)
	return args.Get(0).(int64), args.Error(1)
}
