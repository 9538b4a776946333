package logger

import (
	"log/slog"
	"time"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

// AuditLogger records who did what to which mailbox or thread. Message
// bodies are never logged; only identifiers and routing metadata.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger on top of an existing logger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// MessageSent logs a committed compose or reply.
func (a *AuditLogger) MessageSent(actor models.Actor, msg *models.Message) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Info("message_sent",
		slog.String("event_type", "message_sent"),
		slog.String("actor_id", actor.ID),
		slog.String("message_id", msg.ID),
		slog.String("thread_id", msg.ThreadID),
		slog.String("to_mailbox_id", msg.ToMailboxID),
		slog.Bool("admin_action", msg.FromAdminOutbox),
		slog.Bool("is_reply", msg.ReplyToMessageID != ""),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// ThreadRead logs an explicit mark-read transition.
func (a *AuditLogger) ThreadRead(actor models.Actor, threadID string) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Info("thread_read",
		slog.String("event_type", "thread_read"),
		slog.String("actor_id", actor.ID),
		slog.String("thread_id", threadID),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// ThreadDeleted logs a thread deletion.
func (a *AuditLogger) ThreadDeleted(actor models.Actor, threadID string) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Warn("thread_deleted",
		slog.String("event_type", "thread_deleted"),
		slog.String("actor_id", actor.ID),
		slog.String("thread_id", threadID),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// MailboxDeleted logs a mailbox deletion together with its message cascade.
func (a *AuditLogger) MailboxDeleted(mailboxID string) {
	if a == nil || a.logger == nil {
		return
	}
	a.logger.Warn("mailbox_deleted",
		slog.String("event_type", "mailbox_deleted"),
		slog.String("mailbox_id", mailboxID),
		slog.Time("timestamp", time.Now().UTC()),
	)
}
