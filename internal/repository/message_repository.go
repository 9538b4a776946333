package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	CreateReply(ctx context.Context, reply *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	ListByMailbox(ctx context.Context, mailboxID string, outbound bool) ([]models.Message, error)
	ListByThread(ctx context.Context, threadID string) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, threadID string) (int64, error)
	DeleteThread(ctx context.Context, threadID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	CountUnread(ctx context.Context, mailboxID string) (int64, error)
}

// messageRepository implements MessageRepository using GORM
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository instance
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a newly composed message
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	result := r.db.WithContext(ctx).Create(message)
	if result.Error != nil {
		return fmt.Errorf("failed to create message: %w", result.Error)
	}
	return nil
}

// CreateReply persists a reply and forces the thread root back to unread in
// a single transaction. A reader must never see the reply without the
// root's unread flag, or the flag without the reply.
func (r *messageRepository) CreateReply(ctx context.Context, reply *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reply).Error; err != nil {
			return fmt.Errorf("failed to create reply: %w", err)
		}

		// The root is the message whose id equals the thread id. It may have
		// been individually pruned; the reply still lands in the thread.
		if err := tx.Model(&models.Message{}).
			Where("id = ?", reply.ThreadID).
			Update("is_read", false).Error; err != nil {
			return fmt.Errorf("failed to reset thread root read flag: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a message by its ID
func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&message)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message by ID: %w", result.Error)
	}
	return &message, nil
}

// ListByMailbox retrieves all messages addressed to (inbox view) or sent
// from (outbox view) the given mailbox, newest first. Thread grouping and
// filtering happen in the aggregator, not here.
func (r *messageRepository) ListByMailbox(ctx context.Context, mailboxID string, outbound bool) ([]models.Message, error) {
	column := "to_mailbox_id"
	if outbound {
		column = "from_mailbox_id"
	}

	var messages []models.Message
	result := r.db.WithContext(ctx).
		Where(column+" = ?", mailboxID).
		Order("created_at DESC").
		Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list messages by mailbox: %w", result.Error)
	}
	return messages, nil
}

// ListByThread retrieves every message of a thread, newest first
func (r *messageRepository) ListByThread(ctx context.Context, threadID string) ([]models.Message, error) {
	var messages []models.Message
	result := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC").
		Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list messages by thread: %w", result.Error)
	}
	return messages, nil
}

// MarkThreadRead marks every message of a thread as read and returns how
// many rows changed state. An unknown thread is ErrNotFound.
func (r *messageRepository) MarkThreadRead(ctx context.Context, threadID string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("thread_id = ?", threadID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count thread messages: %w", err)
	}
	if total == 0 {
		return 0, ErrNotFound
	}

	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("thread_id = ? AND is_read = ?", threadID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark thread as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteThread removes every message sharing the thread id in a single
// transaction and returns the number of rows removed. An unknown thread is
// ErrNotFound.
func (r *messageRepository) DeleteThread(ctx context.Context, threadID string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("thread_id = ?", threadID).Delete(&models.Message{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete thread: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpdateStatus changes the workflow status tag of a message
func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update message status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnread counts unread messages addressed to a mailbox. Unread counts
// are per message, not per thread; sent folders are handled by the caller
// and always report zero.
func (r *messageRepository) CountUnread(ctx context.Context, mailboxID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("to_mailbox_id = ? AND is_read = ?", mailboxID, false).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", result.Error)
	}
	return count, nil
}
