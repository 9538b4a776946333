package services

import (
	"fmt"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/config"
	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends a short email to a mailbox's contact address when a
// message lands in its inbox. It is optional: when SMTP is not configured
// the service runs without it.
type EmailNotifier struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewEmailNotifier builds an EmailNotifier from configuration. Returns nil
// when notifications are not configured.
func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	if !cfg.NotificationsEnabled() {
		return nil
	}
	return &EmailNotifier{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.SMTPFromName,
	}
}

// NotifyNewMessage sends the notification mail. It never includes the
// message body; recipients read it in the dashboard.
func (n *EmailNotifier) NotifyNewMessage(recipient string, message *models.Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail))
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("New message: %s", message.Subject))
	m.SetBody("text/plain", fmt.Sprintf(
		"You have a new message from %s.\n\nSubject: %s\nPriority: %s\n\nOpen your dashboard inbox to read and reply.",
		message.SenderName, message.Subject, message.Priority,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
