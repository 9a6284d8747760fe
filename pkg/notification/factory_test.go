package notification

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender_PreviewWhenUnconfigured(t *testing.T) {
	tests := []struct {
		name   string
		config SMTPConfig
	}{
		{"empty config", SMTPConfig{}},
		{"missing password", SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u"}},
		{"placeholder password", SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: PlaceholderPassword}},
		{"missing host", SMTPConfig{Port: 587, Username: "u", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSender(tt.config)
			require.NoError(t, err)
			_, ok := sender.(*PreviewSender)
			assert.True(t, ok, "expected preview transport")
		})
	}
}

func TestNewSender_RealWhenConfigured(t *testing.T) {
	sender, err := NewSender(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer@example.com",
		Password: "secret",
		TLS:      true,
	})
	require.NoError(t, err)

	_, ok := sender.(*SMTPSender)
	assert.True(t, ok, "expected real SMTP transport")
}

func TestPreviewSender_SpoolsMessages(t *testing.T) {
	sender, err := NewPreviewSender()
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(sender.SpoolDir()) })

	err = sender.Send(context.Background(), Message{
		To:      "a@b.com",
		Subject: "hello",
		HTML:    "<p>body</p>",
		Attachment: &Attachment{
			Filename: "logo.png",
			Content:  []byte{0x89, 0x50},
		},
	})
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(sender.SpoolDir(), "*.html"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(entries[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "a@b.com")
	assert.Contains(t, string(content), "<p>body</p>")
	assert.Contains(t, string(content), "logo.png")
}
