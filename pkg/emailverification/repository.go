package emailverification

import (
	"context"
	"time"
)

// VerificationToken binds an opaque token to the email address it
// proves, with an absolute expiry fixed at issuance.
type VerificationToken struct {
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenRepository stores outstanding verification tokens. A given email
// may have any number of outstanding tokens; issuing a new one never
// supersedes older ones.
type TokenRepository interface {
	// Create stores a token keyed by its opaque value.
	Create(ctx context.Context, token VerificationToken) error

	// Consume looks up and destroys a token in one step. It returns
	// ErrTokenNotFound for absent (or already consumed) tokens and
	// ErrTokenExpired for expired ones; an expired entry is deleted by
	// the failed attempt.
	Consume(ctx context.Context, token string) (VerificationToken, error)

	// DeleteExpired removes every token past its expiry and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) int
}
