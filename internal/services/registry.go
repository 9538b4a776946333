package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/repository"
)

// MailboxRegistry resolves an owning entity to its mailbox identifiers.
// User and team mailboxes live in the database; the platform's global
// inbox/outbox are provisioned once and injected as configuration.
// Pure lookup, no side effects, safe for concurrent use.
type MailboxRegistry struct {
	mailboxes        repository.MailboxRepository
	platformInboxID  string
	platformOutboxID string
}

// NewMailboxRegistry creates a MailboxRegistry backed by the given repository
// and the provisioned platform mailbox ids.
func NewMailboxRegistry(mailboxes repository.MailboxRepository, platformInboxID, platformOutboxID string) *MailboxRegistry {
	return &MailboxRegistry{
		mailboxes:        mailboxes,
		platformInboxID:  platformInboxID,
		platformOutboxID: platformOutboxID,
	}
}

// ResolveMailbox returns the mailbox id for (ownerType, ownerID, kind).
// Platform owners resolve from configuration; everything else is a lookup.
func (r *MailboxRegistry) ResolveMailbox(ctx context.Context, ownerType models.OwnerType, ownerID string, kind models.MailboxKind) (string, error) {
	if ownerType == models.OwnerPlatform {
		return r.ResolvePlatformMailbox(kind)
	}

	mailbox, err := r.mailboxes.GetByOwner(ctx, ownerType, ownerID, kind)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("no %s %s for %s %s: %w", ownerType, kind, ownerType, ownerID, apperrors.ErrMailboxNotFound)
		}
		return "", err
	}
	return mailbox.ID, nil
}

// ResolvePlatformMailbox returns the configured global platform mailbox id
// of the given kind. A missing value is a configuration error: the platform
// mailboxes must be provisioned exactly once before the service starts.
func (r *MailboxRegistry) ResolvePlatformMailbox(kind models.MailboxKind) (string, error) {
	switch kind {
	case models.KindInbox:
		if r.platformInboxID == "" {
			return "", fmt.Errorf("platform inbox: %w", apperrors.ErrConfiguration)
		}
		return r.platformInboxID, nil
	case models.KindOutbox:
		if r.platformOutboxID == "" {
			return "", fmt.Errorf("platform outbox: %w", apperrors.ErrConfiguration)
		}
		return r.platformOutboxID, nil
	default:
		return "", fmt.Errorf("unknown mailbox kind %q: %w", kind, apperrors.ErrValidation)
	}
}

// ResolveEndpoint resolves a routing endpoint to a concrete mailbox id.
func (r *MailboxRegistry) ResolveEndpoint(ctx context.Context, ep Endpoint) (string, error) {
	return r.ResolveMailbox(ctx, ep.Owner, ep.OwnerID, ep.Kind)
}

// IsPlatformMailbox reports whether the id is one of the configured global
// platform mailboxes. Platform mailboxes have no row in the mailboxes table.
func (r *MailboxRegistry) IsPlatformMailbox(id string) bool {
	return id != "" && (id == r.platformInboxID || id == r.platformOutboxID)
}
