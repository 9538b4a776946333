package mocks

import (
	"context"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockMessagingService implements handlers.MessagingService
type MockMessagingService struct {
	mock.Mock
}

// Send validates, routes, and persists a compose or reply request
func (m *MockMessagingService) Send(ctx context.Context, actor models.Actor, req *services.SendMessageRequest) (*models.Message, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// ListThreads materializes the thread view of a mailbox folder
func (m *MockMessagingService) ListThreads(ctx context.Context, mailboxID string, folder services.Folder, filter services.ThreadFilter, sortBy services.ThreadSort) ([]services.Thread, error) {
	args := m.Called(ctx, mailboxID, folder, filter, sortBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Thread), args.Error(1)
}

// GetThread returns one thread with its messages
func (m *MockMessagingService) GetThread(ctx context.Context, threadID string) (*services.Thread, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Thread), args.Error(1)
}

// MarkThreadRead transitions every message of a thread to read
func (m *MockMessagingService) MarkThreadRead(ctx context.Context, threadID string) error {
	args := m.Called(ctx, threadID)
	return args.Error(0)
}

// DeleteThread removes every message of a thread
func (m *MockMessagingService) DeleteThread(ctx context.Context, threadID string) error {
	args := m.Called(ctx, threadID)
	return args.Error(0)
}

// UpdateStatus changes the workflow tag of a message
func (m *MockMessagingService) UpdateStatus(ctx context.Context, messageID string, status models.Status) error {
	args := m.Called(ctx, messageID, status)
	return args.Error(0)
}

// UnreadCount counts unread messages for a mailbox folder
func (m *MockMessagingService) UnreadCount(ctx context.Context, mailboxID string, folder services.Folder) (int64, error) {
	args := m.Called(ctx, mailboxID, folder)
	return args.Get(0).(int64), args.Error(1)
}
