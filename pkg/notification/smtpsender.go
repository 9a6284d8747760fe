package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages through a real SMTP service. The client
// is constructed once at startup; each Send dials, delivers and closes.
type SMTPSender struct {
	config SMTPConfig
	client *mail.Client
}

// NewSMTPSender creates a sender bound to the configured SMTP service.
func NewSMTPSender(config SMTPConfig) (*SMTPSender, error) {
	if config.From == "" {
		config.From = config.Username
	}

	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(30 * time.Second),
	}

	if config.Username != "" && config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}

	if !config.TLS {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
			mail.WithTLSPolicy(mail.NoTLS),
		)
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if config.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	}

	slog.Info("Creating mail client", "host", config.Host, "port", config.Port)
	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}

	return &SMTPSender{config: config, client: client}, nil
}

// Send delivers a single message. The context bounds the whole dial and
// send; a hung transport call fails instead of blocking the request
// forever.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.config.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("setting reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if att := msg.Attachment; att != nil {
		if err := m.EmbedReader(att.Filename, bytes.NewReader(att.Content)); err != nil {
			return fmt.Errorf("embedding attachment %s: %w", att.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	slog.Info("Email sent", "to", msg.To, "host", s.config.Host, "port", s.config.Port)
	return nil
}
