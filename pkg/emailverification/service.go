package emailverification

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meridianadvisors/contact-api/pkg/i18n"
	"github.com/meridianadvisors/contact-api/pkg/notification"
	"github.com/meridianadvisors/contact-api/pkg/validation"
)

// Service issues verification tokens, dispatches the verification email
// and exposes redemption.
type Service struct {
	repo          TokenRepository
	mailer        *notification.Manager
	baseURL       string
	publicBaseURL string
	tokenExpiry   time.Duration
	tokenLength   int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTokenExpiry sets how long an issued token stays redeemable.
func WithTokenExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.tokenExpiry = expiry
	}
}

// WithTokenLength sets the number of random bytes per token.
func WithTokenLength(n int) ServiceOption {
	return func(s *Service) {
		s.tokenLength = n
	}
}

// NewService creates a verification service. baseURL is the externally
// reachable address of this backend (used to build redemption links);
// publicBaseURL is the front-end address redirect redemptions land on.
func NewService(repo TokenRepository, mailer *notification.Manager, baseURL, publicBaseURL string, opts ...ServiceOption) *Service {
	s := &Service{
		repo:          repo,
		mailer:        mailer,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		tokenExpiry:   15 * time.Minute,
		tokenLength:   24,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func generateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// IssueVerification validates the address, stores a fresh token and
// dispatches the verification email. The token stays stored even when
// the email dispatch fails, so a redemption link that did arrive is
// still honored.
func (s *Service) IssueVerification(ctx context.Context, email string, locale i18n.Locale) error {
	if !validation.ValidEmail(email) {
		return ErrInvalidEmail
	}

	token, err := generateToken(s.tokenLength)
	if err != nil {
		return err
	}

	now := time.Now()
	entry := VerificationToken{
		Token:     token,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenExpiry),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("storing verification token: %w", err)
	}

	verificationURL := fmt.Sprintf("%s/verify?token=%s", s.baseURL, token)
	err = s.mailer.Send(ctx, notification.VerificationNotice, locale, notification.Data{
		To: email,
		Fields: map[string]string{
			"VerificationURL": verificationURL,
			"ExpiryMinutes":   strconv.Itoa(int(s.tokenExpiry.Minutes())),
		},
	})
	if err != nil {
		slog.Error("Failed to send verification email", "email", email, "err", err)
		return fmt.Errorf("sending verification email: %w", err)
	}

	slog.Info("Verification token issued", "email", email, "expires_at", entry.ExpiresAt)
	return nil
}

// Redeem consumes a token and returns the email it proves. Redemption
// is destructive: a second attempt with the same token yields
// ErrTokenNotFound.
func (s *Service) Redeem(ctx context.Context, token string) (string, error) {
	entry, err := s.repo.Consume(ctx, token)
	if err != nil {
		return "", err
	}
	slog.Info("Verification token redeemed", "email", entry.Email)
	return entry.Email, nil
}

// RedirectURL builds the front-end address a browser redemption lands
// on, carrying the verified email as a query parameter.
func (s *Service) RedirectURL(email string) string {
	return fmt.Sprintf("%s/?verified_email=%s", s.publicBaseURL, url.QueryEscape(email))
}

// StartSweeper purges expired tokens on the given interval until ctx is
// canceled. Expired entries are also removed lazily on redemption, so
// the sweeper only bounds memory; an interval of zero disables it.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := s.repo.DeleteExpired(ctx, now); removed > 0 {
					slog.Debug("Swept expired verification tokens", "removed", removed)
				}
			}
		}
	}()
}
