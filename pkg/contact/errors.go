package contact

import "errors"

var (
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("required fields missing")

	// ErrInvalidEmail is returned when the address fails the syntactic
	// email pattern.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrMessageTooLong is returned when the message exceeds the
	// configured length bound.
	ErrMessageTooLong = errors.New("message too long")
)
