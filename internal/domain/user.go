package domain

import "context"

// User is the partial view of an account consumed by the relay and the
// analytics aggregator. Accounts are owned and mutated elsewhere; this
// package only reads them.
type User struct {
	ID                string `json:"id"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
}

// UserDirectory resolves user ids to their partial views.
type UserDirectory interface {
	// FindByID returns the user with the given id, or an error wrapping
	// ErrNotFound when no such user exists.
	FindByID(ctx context.Context, id string) (*User, error)
}
