package handlers

import (
	"errors"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/response"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/logger"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/repository"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/services"
	"github.com/labstack/echo/v4"
)

// MailboxHandler handles mailbox HTTP requests
type MailboxHandler struct {
	mailboxes repository.MailboxRepository
	registry  *services.MailboxRegistry
	audit     *logger.AuditLogger
}

// NewMailboxHandler creates a new MailboxHandler. audit may be nil.
func NewMailboxHandler(mailboxes repository.MailboxRepository, registry *services.MailboxRegistry, audit *logger.AuditLogger) *MailboxHandler {
	return &MailboxHandler{mailboxes: mailboxes, registry: registry, audit: audit}
}

type createMailboxRequest struct {
	OwnerType   models.OwnerType   `json:"owner_type" validate:"required,oneof=user team"`
	OwnerID     string             `json:"owner_id" validate:"required"`
	Kind        models.MailboxKind `json:"kind" validate:"required,oneof=inbox outbox"`
	NotifyEmail string             `json:"notify_email" validate:"omitempty,email"`
}

// Create handles POST /api/mailboxes. Platform mailboxes come from
// startup configuration, not this endpoint.
func (h *MailboxHandler) Create(c echo.Context) error {
	var req createMailboxRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	mailbox := &models.Mailbox{
		OwnerType:   req.OwnerType,
		OwnerID:     req.OwnerID,
		Kind:        req.Kind,
		NotifyEmail: req.NotifyEmail,
	}

	if err := h.mailboxes.Create(c.Request().Context(), mailbox); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return response.Conflict(c, "mailbox already exists for this owner and kind")
		}
		return response.Error(c, err)
	}

	return response.Created(c, mailbox)
}

// Get handles GET /api/mailboxes/:mailbox_id
func (h *MailboxHandler) Get(c echo.Context) error {
	id := c.Param("mailbox_id")

	if h.registry.IsPlatformMailbox(id) {
		return response.Success(c, map[string]interface{}{
			"id":         id,
			"owner_type": models.OwnerPlatform,
			"kind":       h.platformKind(id),
		})
	}

	mailbox, err := h.mailboxes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "mailbox not found")
		}
		return response.Error(c, err)
	}

	return response.Success(c, mailbox)
}

// ListByOwner handles GET /api/owners/:owner_type/:owner_id/mailboxes
func (h *MailboxHandler) ListByOwner(c echo.Context) error {
	ownerType := models.OwnerType(c.Param("owner_type"))
	if !ownerType.Valid() || ownerType == models.OwnerPlatform {
		return response.BadRequest(c, "invalid owner type")
	}
	ownerID := c.Param("owner_id")

	mailboxes, err := h.mailboxes.ListByOwner(c.Request().Context(), ownerType, ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, mailboxes)
}

// Delete handles DELETE /api/mailboxes/:mailbox_id. All messages addressed to or
// sent from the mailbox go with it.
func (h *MailboxHandler) Delete(c echo.Context) error {
	id := c.Param("mailbox_id")

	if h.registry.IsPlatformMailbox(id) {
		return response.BadRequest(c, "platform mailboxes cannot be deleted")
	}

	if err := h.mailboxes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "mailbox not found")
		}
		return response.Error(c, err)
	}

	h.audit.MailboxDeleted(id)
	return response.NoContent(c)
}

func (h *MailboxHandler) platformKind(id string) models.MailboxKind {
	if inboxID, err := h.registry.ResolvePlatformMailbox(models.KindInbox); err == nil && inboxID == id {
		return models.KindInbox
	}
	return models.KindOutbox
}
