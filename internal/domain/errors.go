package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	// ErrInvalidRequest covers malformed input: missing participants,
	// sender equal to receiver, or an empty payload.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when a referenced user does not exist.
	ErrNotFound = errors.New("requested resource not found")

	// ErrPersistence is returned when the message store fails to read or
	// write. It is the only failure that aborts a send after validation.
	ErrPersistence = errors.New("persistence failure")
)
