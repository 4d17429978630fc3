package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/figtext"
)

// Compile-time interface verification.
var _ figtext.ComponentResolver = (*ComponentResolver)(nil)

// ComponentResolver resolves main components of one stored document.
type ComponentResolver struct {
	db         *DB
	documentID string
}

// NewComponentResolver creates a resolver scoped to the given document.
func NewComponentResolver(db *DB, documentID string) *ComponentResolver {
	return &ComponentResolver{db: db, documentID: documentID}
}

// ResolveComponent looks up the component by id. Returns ENOTFOUND if the
// document does not define it.
func (r *ComponentResolver) ResolveComponent(ctx context.Context, id string) (*figtext.Component, error) {
	var c figtext.Component
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM components WHERE document_id = ? AND id = ?
	`, r.documentID, id).Scan(&c.ID, &c.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, figtext.Errorf(figtext.ENOTFOUND, "component %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
