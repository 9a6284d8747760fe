package ratelimit

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config holds the two rate-limit tiers applied to the API: a global
// per-address window across all endpoints and a tighter one for the
// mail-sending endpoints.
type Config struct {
	GlobalLimit  int
	GlobalWindow time.Duration

	MailLimit  int
	MailWindow time.Duration

	// BucketTTL controls how often idle client entries are purged.
	BucketTTL time.Duration

	// IncludeHeaders controls whether X-RateLimit headers are set.
	IncludeHeaders bool
}

// DefaultConfig mirrors the limits the public site runs with: 100
// requests per 15 minutes globally, 5 per minute on mail endpoints.
func DefaultConfig() Config {
	return Config{
		GlobalLimit:    100,
		GlobalWindow:   15 * time.Minute,
		MailLimit:      5,
		MailWindow:     time.Minute,
		BucketTTL:      time.Hour,
		IncludeHeaders: true,
	}
}

// Middleware applies per-client-address sliding-window limits.
type Middleware struct {
	config Config
	global *SlidingWindow
	mail   *SlidingWindow
}

// NewMiddleware creates the middleware with both limiter tiers.
func NewMiddleware(config Config) *Middleware {
	return &Middleware{
		config: config,
		global: NewSlidingWindow(config.GlobalLimit, config.GlobalWindow, config.BucketTTL),
		mail:   NewSlidingWindow(config.MailLimit, config.MailWindow, config.BucketTTL),
	}
}

// Global limits every request per client address. Mount it on the root
// router.
func (m *Middleware) Global(next http.Handler) http.Handler {
	return m.limit(m.global, next)
}

// Mail applies the tighter per-address limit for mail-sending
// endpoints. Mount it on the /api/email subtree, inside Global.
func (m *Middleware) Mail(next http.Handler) http.Handler {
	return m.limit(m.mail, next)
}

func (m *Middleware) limit(limiter *SlidingWindow, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := clientAddr(r)

		if !limiter.Allow(addr) {
			slog.Warn("Rate limit exceeded",
				"addr", addr, "path", r.URL.Path, "method", r.Method,
				"limit", limiter.Limit(), "window", limiter.Window(),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"success":false,"message":"Too many requests. Please try again later."}`)
			return
		}

		if m.config.IncludeHeaders {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(addr)))
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr extracts the client address, preferring proxy headers over
// the socket peer.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
