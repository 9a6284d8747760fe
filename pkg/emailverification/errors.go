package emailverification

import "errors"

var (
	// ErrInvalidEmail is returned when the address fails the syntactic
	// email pattern.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrTokenNotFound is returned when a verification token is absent,
	// including tokens that were already redeemed.
	ErrTokenNotFound = errors.New("verification token not found")

	// ErrTokenExpired is returned when a verification token has expired.
	// The expired entry is removed as a side effect of the check.
	ErrTokenExpired = errors.New("verification token has expired")
)
