// Package ratelimit implements per-client-address sliding-window rate
// limiting, held in process memory and reset on restart.
package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow allows at most limit hits per key within a trailing
// window. Old hits fall out of the window continuously rather than at
// fixed boundaries.
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

// NewSlidingWindow creates a sliding-window limiter. When ttl > 0 a
// cleanup goroutine periodically drops keys with no hits left in the
// window, bounding memory for one-off clients.
func NewSlidingWindow(limit int, window, ttl time.Duration) *SlidingWindow {
	l := &SlidingWindow{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
	if ttl > 0 {
		go l.cleanup(ttl)
	}
	return l
}

// Allow records a hit for key and reports whether it is within the
// limit. A denied request is not recorded, so a blocked client does not
// extend its own block.
func (l *SlidingWindow) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.prune(key, now)
	if len(recent) >= l.limit {
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Remaining reports how many hits key has left in the current window.
func (l *SlidingWindow) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	left := l.limit - len(l.prune(key, time.Now()))
	if left < 0 {
		return 0
	}
	return left
}

// Limit returns the configured per-window limit.
func (l *SlidingWindow) Limit() int {
	return l.limit
}

// Window returns the configured window duration.
func (l *SlidingWindow) Window() time.Duration {
	return l.window
}

// prune drops hits older than the window and stores the survivors.
// Callers must hold l.mu.
func (l *SlidingWindow) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(cutoff) {
			recent = append(recent, hit)
		}
	}
	if len(recent) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = recent
	return recent
}

// cleanup periodically removes keys whose hits all left the window.
func (l *SlidingWindow) cleanup(ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for key := range l.hits {
			l.prune(key, now)
		}
		l.mu.Unlock()
	}
}
