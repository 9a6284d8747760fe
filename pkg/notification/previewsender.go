package notification

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PreviewSender is a disposable, non-delivering transport for local
// development. Messages are written to a spool directory and a preview
// link is logged for each one.
type PreviewSender struct {
	dir      string
	username string
	password string
}

// NewPreviewSender creates a preview transport with freshly generated
// throwaway credentials and a process-lifetime spool directory.
func NewPreviewSender() (*PreviewSender, error) {
	dir, err := os.MkdirTemp("", "mail-preview-*")
	if err != nil {
		return nil, fmt.Errorf("creating preview spool dir: %w", err)
	}

	s := &PreviewSender{
		dir:      dir,
		username: fmt.Sprintf("preview-%s@localhost", uuid.NewString()[:8]),
		password: uuid.NewString(),
	}
	slog.Warn("Using preview mail transport, messages will NOT be delivered",
		"user", s.username, "spool", s.dir)
	return s, nil
}

// Send spools the message to disk instead of delivering it.
func (s *PreviewSender) Send(ctx context.Context, msg Message) error {
	path := filepath.Join(s.dir, uuid.NewString()+".html")

	body := fmt.Sprintf("<!-- To: %s Reply-To: %s Subject: %s -->\n%s",
		msg.To, msg.ReplyTo, msg.Subject, msg.HTML)
	if att := msg.Attachment; att != nil {
		body += fmt.Sprintf("\n<!-- Attachment: %s (%d bytes) -->", att.Filename, len(att.Content))
	}

	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return fmt.Errorf("spooling preview message: %w", err)
	}

	slog.Info("Mail preview", "to", msg.To, "subject", msg.Subject, "url", "file://"+path)
	return nil
}

// SpoolDir returns the directory preview messages are written to.
func (s *PreviewSender) SpoolDir() string {
	return s.dir
}
