package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/repository"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/validator"
	"github.com/google/uuid"
)

// Folder names a mailbox view. inbox/team/unread/category read messages
// addressed to the mailbox; sent reads messages sent from it.
type Folder string

const (
	FolderInbox    Folder = "inbox"
	FolderSent     Folder = "sent"
	FolderTeam     Folder = "team"
	FolderUnread   Folder = "unread"
	FolderCategory Folder = "category"
)

// Valid reports whether the folder is one of the known views.
func (f Folder) Valid() bool {
	switch f {
	case FolderInbox, FolderSent, FolderTeam, FolderUnread, FolderCategory:
		return true
	}
	return false
}

// Outbound reports whether the folder reads the sent direction.
func (f Folder) Outbound() bool {
	return f == FolderSent
}

// SendMessageRequest is the single compose/reply boundary exposed to the
// rest of the platform. Exactly one compose target is set for new messages;
// replies derive their target from the original message instead.
type SendMessageRequest struct {
	Subject          string          `json:"subject" validate:"required,max=500"`
	Message          string          `json:"message" validate:"required"`
	ToUserID         string          `json:"to_user_id,omitempty"`
	ToTeamID         string          `json:"to_team_id,omitempty"`
	ToPlatformAdmin  bool            `json:"to_platform_admin,omitempty"`
	IsAdminAction    bool            `json:"is_admin_action,omitempty"`
	ReplyToMessageID string          `json:"reply_to_message_id,omitempty"`
	ThreadID         string          `json:"thread_id,omitempty"`
	Context          json.RawMessage `json:"context,omitempty"`
	Category         string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority         models.Priority `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
}

// EventPublisher receives read-side notifications after a state change has
// been committed. Implementations must not block.
type EventPublisher interface {
	MessageCreated(mailboxID string, message *models.Message)
	ThreadRead(threadID string, mailboxIDs []string)
	ThreadDeleted(threadID string, mailboxIDs []string)
}

// Notifier delivers an out-of-band notification for a newly received
// message, e.g. an email to the mailbox owner's contact address.
type Notifier interface {
	NotifyNewMessage(recipient string, message *models.Message) error
}

// MessageService orchestrates compose/reply, thread reads, read-state
// transitions, and thread deletion over the message store.
type MessageService struct {
	messages  repository.MessageRepository
	mailboxes repository.MailboxRepository
	registry  *MailboxRegistry
	routing   *RoutingEngine
	events    EventPublisher
	notifier  Notifier
	logger    *slog.Logger
}

// NewMessageService creates a MessageService. events and notifier may be
// nil; the corresponding side channels are then disabled.
func NewMessageService(
	messages repository.MessageRepository,
	mailboxes repository.MailboxRepository,
	registry *MailboxRegistry,
	routing *RoutingEngine,
	events EventPublisher,
	notifier Notifier,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:  messages,
		mailboxes: mailboxes,
		registry:  registry,
		routing:   routing,
		events:    events,
		notifier:  notifier,
		logger:    logger,
	}
}

// Send validates, routes, and persists a compose or reply request. No
// message record exists after a failed send.
func (s *MessageService) Send(ctx context.Context, actor models.Actor, req *SendMessageRequest) (*models.Message, error) {
	if err := validator.ValidateSendFields(req.Subject, req.Message, string(req.Priority), req.Category); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if req.IsAdminAction && !actor.Admin {
		return nil, fmt.Errorf("actor %s is not a platform administrator: %w", actor.ID, apperrors.ErrForbidden)
	}
	asAdmin := req.IsAdminAction && actor.Admin

	var msg *models.Message
	var err error
	if req.ReplyToMessageID != "" {
		msg, err = s.reply(ctx, actor, req, asAdmin)
	} else {
		msg, err = s.compose(ctx, actor, req, asAdmin)
	}
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, msg)
	return msg, nil
}

// compose builds and persists a new thread root. Its thread id is
// self-referential.
func (s *MessageService) compose(ctx context.Context, actor models.Actor, req *SendMessageRequest, asAdmin bool) (*models.Message, error) {
	target, err := composeTarget(req)
	if err != nil {
		return nil, err
	}

	route, err := s.routing.ResolveCompose(ctx, actor, target, asAdmin)
	if err != nil {
		return nil, err
	}

	msg := s.newMessage(actor, req, route)
	msg.ThreadID = msg.ID

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// reply builds and persists a reply. The thread id is inherited from the
// message being replied to, and the root is forced back to unread in the
// same transaction as the insert.
func (s *MessageService) reply(ctx context.Context, actor models.Actor, req *SendMessageRequest, asAdmin bool) (*models.Message, error) {
	original, err := s.messages.GetByID(ctx, req.ReplyToMessageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInvalidReplyError("message being replied to does not exist")
		}
		return nil, err
	}
	if req.ThreadID != "" && req.ThreadID != original.ThreadID {
		return nil, apperrors.NewInvalidReplyError("thread_id does not match the original message's thread")
	}

	route, err := s.routing.ResolveReply(ctx, actor, original, asAdmin)
	if err != nil {
		return nil, err
	}

	msg := s.newMessage(actor, req, route)
	msg.ThreadID = original.ThreadID
	msg.ReplyToMessageID = original.ID

	// Context and category travel with the thread unless overridden.
	if msg.Category == "" {
		msg.Category = original.Category
	}
	if len(msg.Context) == 0 {
		msg.Context = original.Context
	}

	if err := s.messages.CreateReply(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// newMessage assembles the common fields of a compose or reply. Messages
// start unread; the single stored row carries the recipient's read state,
// so the sender's sent copy is never counted unread.
func (s *MessageService) newMessage(actor models.Actor, req *SendMessageRequest, route Route) *models.Message {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	return &models.Message{
		ID:              uuid.NewString(),
		Subject:         req.Subject,
		Body:            req.Message,
		SenderID:        actor.ID,
		SenderName:      actor.Name,
		SenderEmail:     actor.Email,
		FromMailboxID:   route.FromMailboxID,
		ToMailboxID:     route.ToMailboxID,
		Priority:        priority,
		Category:        req.Category,
		Status:          models.StatusOpen,
		IsRead:          false,
		FromAdminOutbox: route.FromAdminOutbox,
		Context:         req.Context,
	}
}

// composeTarget maps the request's explicit target to an endpoint. Exactly
// one of to_user_id, to_team_id, to_platform_admin must be set.
func composeTarget(req *SendMessageRequest) (Endpoint, error) {
	targets := 0
	if req.ToUserID != "" {
		targets++
	}
	if req.ToTeamID != "" {
		targets++
	}
	if req.ToPlatformAdmin {
		targets++
	}
	if targets != 1 {
		return Endpoint{}, apperrors.NewValidationError("exactly one of to_user_id, to_team_id, to_platform_admin is required")
	}

	switch {
	case req.ToUserID != "":
		return PersonalMailbox(req.ToUserID, models.KindInbox), nil
	case req.ToTeamID != "":
		return TeamMailbox(req.ToTeamID), nil
	default:
		return PlatformMailbox(models.KindInbox), nil
	}
}

// ListThreads materializes the thread view of a mailbox folder.
func (s *MessageService) ListThreads(ctx context.Context, mailboxID string, folder Folder, filter ThreadFilter, sortBy ThreadSort) ([]Thread, error) {
	if !folder.Valid() {
		folder = FolderInbox
	}
	if err := s.checkMailbox(ctx, mailboxID); err != nil {
		return nil, err
	}
	if folder == FolderUnread {
		filter.UnreadOnly = true
	}

	messages, err := s.messages.ListByMailbox(ctx, mailboxID, folder.Outbound())
	if err != nil {
		return nil, err
	}
	return AggregateThreads(messages, filter, sortBy), nil
}

// GetThread returns one thread with its messages, newest first. Reading a
// thread never mutates read state; callers mark it read explicitly.
func (s *MessageService) GetThread(ctx context.Context, threadID string) (*Thread, error) {
	messages, err := s.messages.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("thread %s: %w", threadID, apperrors.ErrThreadNotFound)
	}

	thread := buildThread(threadID, messages)
	return &thread, nil
}

// MarkThreadRead transitions every message of a thread to read, the
// all-or-nothing "opened" transition.
func (s *MessageService) MarkThreadRead(ctx context.Context, threadID string) error {
	messages, err := s.messages.ListByThread(ctx, threadID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("thread %s: %w", threadID, apperrors.ErrThreadNotFound)
	}

	if _, err := s.messages.MarkThreadRead(ctx, threadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("thread %s: %w", threadID, apperrors.ErrThreadNotFound)
		}
		return err
	}

	if s.events != nil {
		s.events.ThreadRead(threadID, recipientMailboxes(messages))
	}
	return nil
}

// DeleteThread removes every message of a thread. Deleting an unknown
// thread is a hard not-found error, applied consistently across the API.
func (s *MessageService) DeleteThread(ctx context.Context, threadID string) error {
	// Snapshot the participants first so subscribers can be told which
	// mailboxes lost the thread.
	messages, err := s.messages.ListByThread(ctx, threadID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("thread %s: %w", threadID, apperrors.ErrThreadNotFound)
	}

	deleted, err := s.messages.DeleteThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("thread %s: %w", threadID, apperrors.ErrThreadNotFound)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("thread deleted",
			slog.String("thread_id", threadID),
			slog.Int64("messages_deleted", deleted),
		)
	}
	if s.events != nil {
		s.events.ThreadDeleted(threadID, recipientMailboxes(messages))
	}
	return nil
}

// UpdateStatus changes the workflow tag of a message. Status is independent
// of read state and may be changed by any participant with update rights.
func (s *MessageService) UpdateStatus(ctx context.Context, messageID string, status models.Status) error {
	if !status.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}

	if err := s.messages.UpdateStatus(ctx, messageID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("message %s: %w", messageID, apperrors.ErrMessageNotFound)
		}
		return err
	}
	return nil
}

// UnreadCount counts unread messages for a mailbox folder. Counts are per
// message, not per thread; sent folders always report zero.
func (s *MessageService) UnreadCount(ctx context.Context, mailboxID string, folder Folder) (int64, error) {
	if err := s.checkMailbox(ctx, mailboxID); err != nil {
		return 0, err
	}
	if folder.Outbound() {
		return 0, nil
	}
	return s.messages.CountUnread(ctx, mailboxID)
}

// checkMailbox verifies the mailbox exists. The configured platform
// mailboxes have no row and always pass.
func (s *MessageService) checkMailbox(ctx context.Context, mailboxID string) error {
	if s.registry.IsPlatformMailbox(mailboxID) {
		return nil
	}
	if _, err := s.mailboxes.GetByID(ctx, mailboxID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("mailbox %s: %w", mailboxID, apperrors.ErrMailboxNotFound)
		}
		return err
	}
	return nil
}

// publishCreated fans a committed message out to the read-side channels.
func (s *MessageService) publishCreated(ctx context.Context, msg *models.Message) {
	if s.events != nil {
		s.events.MessageCreated(msg.ToMailboxID, msg)
	}

	if s.notifier == nil {
		return
	}
	mailbox, err := s.mailboxes.GetByID(ctx, msg.ToMailboxID)
	if err != nil || mailbox.NotifyEmail == "" || mailbox.Kind != models.KindInbox {
		return
	}
	if err := s.notifier.NotifyNewMessage(mailbox.NotifyEmail, msg); err != nil && s.logger != nil {
		s.logger.Warn("new message notification failed",
			slog.String("message_id", msg.ID),
			slog.Any("error", err),
		)
	}
}

// recipientMailboxes collects the distinct destination mailboxes of a
// message set.
func recipientMailboxes(messages []models.Message) []string {
	seen := make(map[string]bool, len(messages))
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		if !seen[m.ToMailboxID] {
			seen[m.ToMailboxID] = true
			ids = append(ids, m.ToMailboxID)
		}
	}
	return ids
}
