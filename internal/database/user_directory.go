package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"linguachat/internal/domain"
)

// SurrealUserDirectory implements domain.UserDirectory over the user table
// owned by the account component. Only the fields the relay and aggregator
// need are selected.
type SurrealUserDirectory struct {
	db *surrealdb.DB
}

// NewSurrealUserDirectory creates a read-only user directory.
func NewSurrealUserDirectory(db *surrealdb.DB) *SurrealUserDirectory {
	return &SurrealUserDirectory{db: db}
}

var _ domain.UserDirectory = (*SurrealUserDirectory)(nil)

// FindByID returns the user's partial view, or domain.ErrNotFound.
func (d *SurrealUserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT record::id(id) AS id, fullName, email, preferredLanguage
		FROM type::thing("user", $id)
	`
	params := map[string]any{"id": id}

	user, err := QueryOne[domain.User](ctx, d.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrPersistence, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, id)
	}
	return user, nil
}
