package notify

import (
	"context"
	"io"
	"log/slog"
	"time"

	mail "gopkg.in/mail.v2"

	"github.com/polkiloo/fabricstore/internal/config"
)

const dialTimeout = 10 * time.Second

type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPDispatcher delivers messages through an SMTP relay.
type SMTPDispatcher struct {
	from   string
	sender sender
	logger *slog.Logger
}

// NewSMTPDispatcher creates dispatcher for the relay configured in cfg.
func NewSMTPDispatcher(cfg *config.Config, logger *slog.Logger) *SMTPDispatcher {
	dialer := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	dialer.Timeout = dialTimeout
	return &SMTPDispatcher{from: cfg.MailFrom, sender: dialer, logger: logger}
}

// Send delivers msg and reports whether the relay accepted it.
func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) bool {
	if msg.To == "" {
		d.logger.Warn("notification without recipient skipped", slog.String("subject", msg.Subject))
		return false
	}
	if err := ctx.Err(); err != nil {
		d.logger.Warn("notification cancelled", slog.String("to", msg.To), slog.String("error", err.Error()))
		return false
	}

	if err := d.sender.DialAndSend(d.compose(msg)); err != nil {
		d.logger.Error("send notification failed",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
		return false
	}
	d.logger.Info("notification sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return true
}

func (d *SMTPDispatcher) compose(msg Message) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	for _, a := range msg.Attachments {
		content := a.Content
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		m.Attach(a.Name,
			mail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			mail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		)
	}
	return m
}

// New returns SMTP dispatcher when a relay host is configured and a log-only
// dispatcher otherwise.
func New(cfg *config.Config, logger *slog.Logger) Dispatcher {
	if cfg.SMTPHost == "" {
		logger.Warn("smtp host not configured, notifications will only be logged")
		return NewLogDispatcher(logger)
	}
	return NewSMTPDispatcher(cfg, logger)
}
