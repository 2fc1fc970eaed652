package email

import (
	"context"
	"log/slog"
)

// Email is an outgoing message: one recipient, HTML body with a plain-text
// alternative, UTF-8 throughout.
type Email struct {
	To       string // recipient address
	ToName   string // recipient display name (optional)
	Subject  string
	HTMLBody string
	TextBody string // plain-text alternative
}

// Sender delivers a single message via an external mail transport.
// Implementations must not retry; the caller owns failure handling.
type Sender interface {
	Send(ctx context.Context, e *Email) error
}

// LogSender logs messages instead of delivering them. Used in development
// when no relay is reachable.
type LogSender struct {
	Logger *slog.Logger
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, e *Email) error {
	s.Logger.Info("email: would send",
		"to", e.To,
		"to_name", e.ToName,
		"subject", e.Subject,
		"text_len", len(e.TextBody),
		"html_len", len(e.HTMLBody),
	)
	return nil
}
