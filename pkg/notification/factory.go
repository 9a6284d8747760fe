package notification

import "log/slog"

// PlaceholderPassword is the literal value shipped in example
// configuration. A password equal to it counts as unconfigured.
const PlaceholderPassword = "changeme"

// NewSender resolves the outbound transport once, at startup. A complete
// set of SMTP credentials selects the real transport; anything less
// selects the preview transport. If the real client cannot be
// constructed the preview transport is used as a fallback rather than
// refusing to start.
func NewSender(config SMTPConfig) (Sender, error) {
	if hasValidSMTP(config) {
		sender, err := NewSMTPSender(config)
		if err == nil {
			return sender, nil
		}
		slog.Warn("SMTP transport unavailable, falling back to preview transport", "err", err)
	} else {
		slog.Warn("SMTP credentials incomplete, using preview transport")
	}
	return NewPreviewSender()
}

func hasValidSMTP(config SMTPConfig) bool {
	return config.Host != "" &&
		config.Port != 0 &&
		config.Username != "" &&
		config.Password != "" &&
		config.Password != PlaceholderPassword
}
