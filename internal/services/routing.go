package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

// Endpoint is a closed description of a message origin or destination:
// a personal mailbox, a team inbox, or one of the platform's global
// mailboxes. Routing decisions are made on endpoints, never on raw
// boolean flags.
type Endpoint struct {
	Owner   models.OwnerType
	OwnerID string
	Kind    models.MailboxKind
}

// PersonalMailbox is the endpoint for a user's own inbox or outbox.
func PersonalMailbox(userID string, kind models.MailboxKind) Endpoint {
	return Endpoint{Owner: models.OwnerUser, OwnerID: userID, Kind: kind}
}

// TeamMailbox is the endpoint for a team's shared inbox. Teams have no
// outbox; team messages are sent from a member's personal outbox.
func TeamMailbox(teamID string) Endpoint {
	return Endpoint{Owner: models.OwnerTeam, OwnerID: teamID, Kind: models.KindInbox}
}

// PlatformMailbox is the endpoint for the platform's global inbox or
// admin outbox.
func PlatformMailbox(kind models.MailboxKind) Endpoint {
	return Endpoint{Owner: models.OwnerPlatform, Kind: kind}
}

// Route is the resolved addressing for a single message.
type Route struct {
	FromMailboxID   string
	ToMailboxID     string
	FromAdminOutbox bool
}

// RoutingEngine decides the (from, to) mailbox pair for new messages and
// replies. Compose targets are explicit; reply targets derive from the
// original message's sender and provenance.
type RoutingEngine struct {
	registry *MailboxRegistry
}

// NewRoutingEngine creates a RoutingEngine on top of the registry.
func NewRoutingEngine(registry *MailboxRegistry) *RoutingEngine {
	return &RoutingEngine{registry: registry}
}

// ResolveCompose resolves addressing for a newly composed, non-reply
// message. The caller names the target endpoint; the sender side is the
// actor's personal outbox, or the platform admin outbox when the actor is
// acting in an administrative capacity.
func (e *RoutingEngine) ResolveCompose(ctx context.Context, actor models.Actor, target Endpoint, asAdmin bool) (Route, error) {
	if target.Kind != models.KindInbox {
		return Route{}, fmt.Errorf("compose target must be an inbox: %w", apperrors.ErrValidation)
	}

	to, err := e.registry.ResolveEndpoint(ctx, target)
	if err != nil {
		return Route{}, err
	}

	from, fromAdmin, err := e.resolveFrom(ctx, actor, asAdmin)
	if err != nil {
		return Route{}, err
	}

	return Route{FromMailboxID: from, ToMailboxID: to, FromAdminOutbox: fromAdmin}, nil
}

// ResolveReply resolves addressing for a reply to the given original
// message. The target is never restated by the caller:
//
//   - official admin messages (sent from the admin outbox) are answered to
//     their sender's personal inbox;
//   - admins answering a message addressed to the platform inbox reply to
//     its sender's personal inbox, through the admin outbox;
//   - regular users replying inside a platform-inbox thread are re-routed
//     to the global platform inbox, never to an individual admin;
//   - otherwise the reply goes to the original sender's personal inbox, or
//     follows the original destination when the replier answers their own
//     message.
func (e *RoutingEngine) ResolveReply(ctx context.Context, actor models.Actor, original *models.Message, asAdmin bool) (Route, error) {
	if original == nil {
		return Route{}, apperrors.NewInvalidReplyError("original message is not available")
	}

	platformInbox, err := e.registry.ResolvePlatformMailbox(models.KindInbox)
	if err != nil {
		return Route{}, err
	}
	toPlatform := original.ToMailboxID == platformInbox

	var to string
	switch {
	case original.FromAdminOutbox:
		to, err = e.registry.ResolveEndpoint(ctx, PersonalMailbox(original.SenderID, models.KindInbox))

	case toPlatform && asAdmin:
		to, err = e.registry.ResolveEndpoint(ctx, PersonalMailbox(original.SenderID, models.KindInbox))

	case toPlatform:
		// All admin correspondence flows through the single global admin
		// mailbox; there is no per-admin routing.
		to = platformInbox

	case original.SenderID != actor.ID:
		to, err = e.registry.ResolveEndpoint(ctx, PersonalMailbox(original.SenderID, models.KindInbox))

	default:
		// The sender follows up in their own thread; keep the destination.
		to = original.ToMailboxID
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrMailboxNotFound) {
			return Route{}, apperrors.NewInvalidReplyError("reply target mailbox does not exist")
		}
		return Route{}, err
	}

	from, fromAdmin, err := e.resolveFrom(ctx, actor, asAdmin)
	if err != nil {
		return Route{}, err
	}

	return Route{FromMailboxID: from, ToMailboxID: to, FromAdminOutbox: fromAdmin}, nil
}

// resolveFrom picks the sending mailbox for the actor.
func (e *RoutingEngine) resolveFrom(ctx context.Context, actor models.Actor, asAdmin bool) (string, bool, error) {
	if asAdmin {
		id, err := e.registry.ResolvePlatformMailbox(models.KindOutbox)
		if err != nil {
			return "", false, err
		}
		return id, true, nil
	}

	id, err := e.registry.ResolveEndpoint(ctx, PersonalMailbox(actor.ID, models.KindOutbox))
	if err != nil {
		return "", false, err
	}
	return id, false, nil
}
