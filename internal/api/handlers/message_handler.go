package handlers

import (
	"context"
	"strconv"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/middleware"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/api/response"
	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/logger"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/services"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/validator"
	"github.com/labstack/echo/v4"
)

// MessagingService is the surface of the message service the handlers use.
type MessagingService interface {
	Send(ctx context.Context, actor models.Actor, req *services.SendMessageRequest) (*models.Message, error)
	ListThreads(ctx context.Context, mailboxID string, folder services.Folder, filter services.ThreadFilter, sortBy services.ThreadSort) ([]services.Thread, error)
	GetThread(ctx context.Context, threadID string) (*services.Thread, error)
	MarkThreadRead(ctx context.Context, threadID string) error
	DeleteThread(ctx context.Context, threadID string) error
	UpdateStatus(ctx context.Context, messageID string, status models.Status) error
	UnreadCount(ctx context.Context, mailboxID string, folder services.Folder) (int64, error)
}

// MessageHandler handles message and thread HTTP requests
type MessageHandler struct {
	svc   MessagingService
	audit *logger.AuditLogger
}

// NewMessageHandler creates a new MessageHandler. audit may be nil.
func NewMessageHandler(svc MessagingService, audit *logger.AuditLogger) *MessageHandler {
	return &MessageHandler{svc: svc, audit: audit}
}

// Send handles POST /api/messages, the compose/reply boundary.
func (h *MessageHandler) Send(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Error(c, apperrors.ErrUnauthorized)
	}

	var req services.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	msg, err := h.svc.Send(c.Request().Context(), actor, &req)
	if err != nil {
		return response.Error(c, err)
	}

	h.audit.MessageSent(actor, msg)
	return response.Created(c, msg)
}

// ListThreads handles GET /api/mailboxes/:mailbox_id/threads
func (h *MessageHandler) ListThreads(c echo.Context) error {
	mailboxID := c.Param("mailbox_id")
	if mailboxID == "" {
		return response.BadRequest(c, "mailbox_id is required")
	}

	folder := services.Folder(c.QueryParam("folder"))
	if folder != "" && !folder.Valid() {
		return response.BadRequest(c, "invalid folder")
	}

	sortBy := services.ThreadSort(c.QueryParam("sort"))
	if sortBy != "" && !services.ValidThreadSort(sortBy) {
		return response.BadRequest(c, "invalid sort")
	}

	filter := services.ThreadFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	if unread := c.QueryParam("unread"); unread != "" {
		v, err := strconv.ParseBool(unread)
		if err != nil {
			return response.BadRequest(c, "unread must be a boolean")
		}
		filter.UnreadOnly = v
	}

	threads, err := h.svc.ListThreads(c.Request().Context(), mailboxID, folder, filter, sortBy)
	if err != nil {
		return response.Error(c, err)
	}

	// Grouping happens before pagination, so a thread never straddles a
	// page boundary.
	limit, offset := paginationParams(c)
	total := int64(len(threads))
	page := paginateThreads(threads, limit, offset)

	return response.Paginated(c, page, total, limit, offset)
}

// GetThread handles GET /api/threads/:thread_id. Reading never mutates
// read state.
func (h *MessageHandler) GetThread(c echo.Context) error {
	thread, err := h.svc.GetThread(c.Request().Context(), c.Param("thread_id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, thread)
}

// MarkThreadRead handles PATCH /api/threads/:thread_id/read
func (h *MessageHandler) MarkThreadRead(c echo.Context) error {
	threadID := c.Param("thread_id")
	if err := h.svc.MarkThreadRead(c.Request().Context(), threadID); err != nil {
		return response.Error(c, err)
	}

	if actor, ok := middleware.ActorFromContext(c); ok {
		h.audit.ThreadRead(actor, threadID)
	}
	return response.SuccessWithMessage(c, nil, "thread marked as read")
}

// DeleteThread handles DELETE /api/threads/:thread_id
func (h *MessageHandler) DeleteThread(c echo.Context) error {
	threadID := c.Param("thread_id")
	if err := h.svc.DeleteThread(c.Request().Context(), threadID); err != nil {
		return response.Error(c, err)
	}

	if actor, ok := middleware.ActorFromContext(c); ok {
		h.audit.ThreadDeleted(actor, threadID)
	}
	return response.NoContent(c)
}

// statusUpdateRequest is the body of a workflow status change.
type statusUpdateRequest struct {
	Status models.Status `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// UpdateStatus handles PATCH /api/messages/:id/status
func (h *MessageHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "message status updated")
}

// UnreadCount handles GET /api/mailboxes/:mailbox_id/unread
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	mailboxID := c.Param("mailbox_id")
	folder := services.Folder(c.QueryParam("folder"))
	if folder != "" && !folder.Valid() {
		return response.BadRequest(c, "invalid folder")
	}

	count, err := h.svc.UnreadCount(c.Request().Context(), mailboxID, folder)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"unread_count": count})
}

// paginationParams reads and sanitizes limit/offset query parameters.
func paginationParams(c echo.Context) (int, int) {
	limit, offset := 0, 0
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			offset = parsed
		}
	}
	return validator.ValidatePagination(limit, offset)
}

// paginateThreads slices an already-ordered thread list.
func paginateThreads(threads []services.Thread, limit, offset int) []services.Thread {
	if offset >= len(threads) {
		return []services.Thread{}
	}
	end := offset + limit
	if end > len(threads) {
		end = len(threads)
	}
	return threads[offset:end]
}
