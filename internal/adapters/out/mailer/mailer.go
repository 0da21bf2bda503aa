// Package mailer implements the outbound notification port over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"

	"github.com/wneessen/go-mail"
)

// HeaderDedupeKey carries the outbox dedupe key so duplicate deliveries can be spotted downstream.
const HeaderDedupeKey mail.Header = "X-Notification-Key"

// Config holds SMTP settings. An empty Username disables authentication.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier sends each notification as a plain-text email.
type SMTPNotifier struct {
	client sender
	from   string
}

// NewSMTPNotifier builds a client with opportunistic STARTTLS.
func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail from address is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return newSMTPNotifier(client, cfg.From), nil
}

func newSMTPNotifier(client sender, from string) *SMTPNotifier {
	return &SMTPNotifier{client: client, from: from}
}

// Send implements ports.Notifier.
func (n *SMTPNotifier) Send(ctx context.Context, notification ports.Notification) error {
	msg, err := n.message(notification)
	if err != nil {
		return err
	}
	if err = n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s: %w", notification.DedupeKey, err)
	}
	return nil
}

func (n *SMTPNotifier) message(notification ports.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(notification.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(notification.Subject)
	msg.SetGenHeader(HeaderDedupeKey, notification.DedupeKey)
	msg.SetBodyString(mail.TypeTextPlain, notification.Body)
	return msg, nil
}

// LogNotifier logs notifications instead of sending them. It stands in for SMTP in local setups.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log-notifier")}
}

func (n *LogNotifier) Send(ctx context.Context, notification ports.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"dedupe_key", notification.DedupeKey,
		"recipient", string(notification.Recipient),
		"to", notification.To,
		"subject", notification.Subject,
	)
	return nil
}
