package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"snackspace/internal/domain"
)

// SMTPConfig holds SMTP connection parameters.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // optional - some servers allow unauthenticated relay
	Password string // optional
	From     string // sender address
	FromName string // sender display name
}

// SMTPSender implements Sender using go-mail: TLS policy picked from the
// port, PLAIN auth when credentials are set, 30s connection timeout.
type SMTPSender struct {
	config SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender creates an SMTP email sender.
func NewSMTPSender(config SMTPConfig, logger *slog.Logger) *SMTPSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPSender{config: config, logger: logger}
}

// Send delivers the message. Transport rejection comes back as a domain
// error with code ETRANSPORT so the dispatcher can record it per-message.
func (s *SMTPSender) Send(ctx context.Context, e *Email) error {
	msg := mail.NewMsg()
	msg.SetCharset(mail.CharsetUTF8)

	if err := msg.FromFormat(s.config.FromName, s.config.From); err != nil {
		return &domain.Error{Code: domain.EINVALID, Op: "email.send", Message: "invalid from address", Err: err}
	}
	if err := msg.AddToFormat(e.ToName, e.To); err != nil {
		return &domain.Error{Code: domain.EINVALID, Op: "email.send", Message: "invalid to address", Err: err}
	}

	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	}

	client, err := mail.NewClient(s.config.Host, s.buildClientOptions()...)
	if err != nil {
		return &domain.Error{Code: domain.ETRANSPORT, Op: "email.send", Message: "failed to create SMTP client", Err: err}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("smtp: failed to send email", "to", e.To, "error", err)
		return &domain.Error{Code: domain.ETRANSPORT, Op: "email.send", Message: err.Error(), Err: err}
	}

	s.logger.Info("smtp: email sent", "to", e.To, "subject", e.Subject)
	return nil
}

// buildClientOptions returns go-mail client options based on configuration.
func (s *SMTPSender) buildClientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithTimeout(30 * time.Second),
	}

	switch s.config.Port {
	case 465:
		// Implicit TLS (SMTPS)
		opts = append(opts, mail.WithSSL())
	case 587:
		// STARTTLS (submission port)
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		// Plain SMTP or opportunistic STARTTLS
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if s.config.Username != "" && s.config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.Username),
			mail.WithPassword(s.config.Password),
		)
	}

	return opts
}
