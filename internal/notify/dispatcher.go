// Package notify builds and delivers transactional email.
package notify

import (
	"context"
	"log/slog"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Message is a single outgoing email.
type Message struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Dispatcher delivers messages. Send never fails loudly: it reports success
// and leaves logging of the cause to the implementation.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) bool
}

// LogDispatcher records messages in the log instead of delivering them.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates dispatcher used when SMTP is not configured.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Send logs the message envelope and reports success.
func (d *LogDispatcher) Send(ctx context.Context, msg Message) bool {
	if msg.To == "" {
		d.logger.Warn("notification without recipient skipped", slog.String("subject", msg.Subject))
		return false
	}
	d.logger.InfoContext(ctx, "notification not delivered, smtp disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(msg.Attachments)),
	)
	return true
}
