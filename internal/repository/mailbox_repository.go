package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"gorm.io/gorm"
)

// MailboxRepository defines the interface for mailbox data access
type MailboxRepository interface {
	Create(ctx context.Context, mailbox *models.Mailbox) error
	GetByID(ctx context.Context, id string) (*models.Mailbox, error)
	GetByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string, kind models.MailboxKind) (*models.Mailbox, error)
	ListByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) ([]models.Mailbox, error)
	Delete(ctx context.Context, id string) error
}

// mailboxRepository implements MailboxRepository using GORM
type mailboxRepository struct {
	db *gorm.DB
}

// NewMailboxRepository creates a new MailboxRepository instance
func NewMailboxRepository(db *gorm.DB) MailboxRepository {
	return &mailboxRepository{db: db}
}

// Create creates a new mailbox. Each owner has at most one mailbox per kind.
func (r *mailboxRepository) Create(ctx context.Context, mailbox *models.Mailbox) error {
	result := r.db.WithContext(ctx).Create(mailbox)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("%s %s already has a %s: %w",
				mailbox.OwnerType, mailbox.OwnerID, mailbox.Kind, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create mailbox: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a mailbox by its ID
func (r *mailboxRepository) GetByID(ctx context.Context, id string) (*models.Mailbox, error) {
	var mailbox models.Mailbox
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&mailbox)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mailbox by ID: %w", result.Error)
	}
	return &mailbox, nil
}

// GetByOwner retrieves the single mailbox of the given kind for an owner
func (r *mailboxRepository) GetByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string, kind models.MailboxKind) (*models.Mailbox, error) {
	var mailbox models.Mailbox
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ? AND kind = ?", ownerType, ownerID, kind).
		First(&mailbox)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mailbox by owner: %w", result.Error)
	}
	return &mailbox, nil
}

// ListByOwner retrieves all mailboxes belonging to an owner
func (r *mailboxRepository) ListByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) ([]models.Mailbox, error) {
	var mailboxes []models.Mailbox
	result := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("kind ASC").
		Find(&mailboxes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list mailboxes by owner: %w", result.Error)
	}
	return mailboxes, nil
}

// Delete removes a mailbox and every message addressed to or from it.
// Runs in a transaction so a reader never observes a mailbox without
// its messages or vice versa.
func (r *mailboxRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Mailbox{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete mailbox: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("to_mailbox_id = ? OR from_mailbox_id = ?", id, id).
			Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete mailbox messages: %w", err)
		}
		return nil
	})
}
