package reminder

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/vinledger/vinledger/internal/settings"
)

// Transport delivers resolved messages over SMTP.
type Transport interface {
	// Verify dials and authenticates without sending anything.
	Verify(ctx context.Context) error

	// Send delivers a message and returns a provider response string.
	Send(ctx context.Context, msg *Message) (string, error)
}

// TransportFactory builds a Transport from validated settings. The
// orchestrator takes one of these so tests can substitute a recording
// transport.
type TransportFactory func(cfg settings.Settings, logger *slog.Logger) (Transport, error)

// SMTPTransport implements Transport using go-mail. A fresh client is
// dialed per operation; connections are not pooled or reused.
type SMTPTransport struct {
	cfg    settings.Settings
	logger *slog.Logger
}

var _ Transport = (*SMTPTransport)(nil)

// NewTransport validates the transport-required settings and constructs
// an SMTP transport. Missing fields yield a *ConfigError immediately,
// with no network I/O.
func NewTransport(cfg settings.Settings, logger *slog.Logger) (Transport, error) {
	if missing := cfg.MissingTransportFields(); len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPTransport{cfg: cfg, logger: logger}, nil
}

// Verify dials the server and authenticates, then disconnects.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	client, err := t.newClient()
	if err != nil {
		return &TransportError{Op: "connect", Err: err}
	}
	if err := client.DialWithContext(ctx); err != nil {
		return &TransportError{Op: "verify", Err: err}
	}
	defer client.Close()
	return nil
}

// Send delivers msg and returns a synthetic message id; SMTP does not
// reliably report one.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) (string, error) {
	m := mail.NewMsg()

	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.From); err != nil {
			return "", &TransportError{Op: "send", Err: fmt.Errorf("invalid from address: %w", err)}
		}
	} else if err := m.From(msg.From); err != nil {
		return "", &TransportError{Op: "send", Err: fmt.Errorf("invalid from address: %w", err)}
	}
	if err := m.To(msg.To); err != nil {
		return "", &TransportError{Op: "send", Err: fmt.Errorf("invalid to address: %w", err)}
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return "", &TransportError{Op: "send", Err: fmt.Errorf("invalid reply-to address: %w", err)}
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if att := msg.Attachment; att != nil {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Content),
			mail.WithFileContentType(mail.ContentType(att.ContentType))); err != nil {
			return "", &TransportError{Op: "send", Err: fmt.Errorf("failed to attach %s: %w", att.Filename, err)}
		}
	}

	client, err := t.newClient()
	if err != nil {
		return "", &TransportError{Op: "connect", Err: err}
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		t.logger.Error("smtp: send failed",
			"host", t.cfg.Host, "to", msg.To, "error", err)
		return "", &TransportError{Op: "send", Err: err}
	}

	id := "smtp-" + uuid.NewString()
	t.logger.Info("smtp: message accepted", "to", msg.To, "message_id", id)
	return id, nil
}

// newClient builds a go-mail client from the settings. Implicit TLS is
// used when the secure flag is set or the port is 465; otherwise the TLS
// policy follows the require-TLS flag. Certificate verification is only
// disabled when explicitly allowed.
func (t *SMTPTransport) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTimeout(30 * time.Second),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
		mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
	}

	switch {
	case t.cfg.Secure || t.cfg.Port == 465:
		opts = append(opts, mail.WithSSL())
	case t.cfg.RequireTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if t.cfg.AllowInvalidTLS {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true,
			ServerName:         t.cfg.Host,
		}))
	}

	return mail.NewClient(t.cfg.Host, opts...)
}
