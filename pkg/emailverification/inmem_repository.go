package emailverification

import (
	"context"
	"sync"
	"time"
)

// InMemoryTokenRepository implements TokenRepository with a mutex-guarded
// map. The lock makes the lookup-and-delete in Consume atomic, so a token
// is redeemable at most once even under concurrent requests.
type InMemoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]VerificationToken
}

// NewInMemoryTokenRepository creates an empty in-memory token store.
func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{
		tokens: make(map[string]VerificationToken),
	}
}

// Create stores a token. An existing entry with the same key is
// overwritten; with tokens drawn from a CSPRNG that never happens in
// practice.
func (r *InMemoryTokenRepository) Create(ctx context.Context, token VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

// Consume destroys and returns the entry for token. Expired entries are
// removed by the attempt itself.
func (r *InMemoryTokenRepository) Consume(ctx context.Context, token string) (VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	if !ok {
		return VerificationToken{}, ErrTokenNotFound
	}
	delete(r.tokens, token)

	if time.Now().After(entry.ExpiresAt) {
		return VerificationToken{}, ErrTokenExpired
	}
	return entry, nil
}

// DeleteExpired removes all entries past their expiry.
func (r *InMemoryTokenRepository) DeleteExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.tokens {
		if now.After(entry.ExpiresAt) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored tokens, expired ones included.
func (r *InMemoryTokenRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
