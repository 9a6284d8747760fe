// Package antispam implements the heuristic pre-check applied to the
// mail-sending endpoints that accept arbitrary user content.
//
// It is a cheap filter for naive automated submitters, not a security
// boundary: a deliberate actor can trivially bypass both signals.
package antispam

import (
	"strings"
	"time"
)

// MinDwell is the minimum time a human is assumed to need between the
// form rendering and its submission.
const MinDwell = 2 * time.Second

// Signals carries the hidden form fields submitted alongside a request.
type Signals struct {
	// Honeypot is a field invisible to real users. Any non-empty value
	// indicates automation.
	Honeypot string
	// FormStartMs is the client-reported render time of the form, in
	// Unix milliseconds. Zero means the client did not report it.
	FormStartMs int64
}

// SpamLike reports whether a submission looks automated: a filled
// honeypot field, or a dwell time under MinDwell.
func SpamLike(sig Signals, now time.Time) bool {
	if strings.TrimSpace(sig.Honeypot) != "" {
		return true
	}
	if sig.FormStartMs > 0 {
		started := time.UnixMilli(sig.FormStartMs)
		if now.Sub(started) < MinDwell {
			return true
		}
	}
	return false
}
