// internal/membership/implementation.go
package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// directory implements the Directory interface.
type directory struct {
	db *sqlx.DB
}

// NewDirectory creates a Postgres-backed membership directory.
func NewDirectory(db *sqlx.DB) Directory {
	return &directory{db: db}
}

// Resolve looks up a member by name, joining in the role.
func (d *directory) Resolve(ctx context.Context, name string) (*Member, error) {
	const query = `
		SELECT u.id, u.name, r.role
		  FROM users u
		 INNER JOIN roles r ON r.id = u.role_id
		 WHERE u.name = $1
	`

	member := &Member{}
	if err := d.db.GetContext(ctx, member, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to resolve user %q: %w", name, err)
	}

	return member, nil
}
