// internal/storage/postgres.go
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// Open connects to Postgres and verifies the connection with a ping. The
// handle is shared by every component for the lifetime of the process.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return db, nil
}

// InitSchema creates the tables if they do not exist. The unique index on
// loans.book_id backs the one-active-loan-per-book invariant at the storage
// layer; removing a book cascades to its loan.
func InitSchema(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id SERIAL PRIMARY KEY,
			role TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			role_id INT NOT NULL REFERENCES roles (id)
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			isbn TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS loans (
			id UUID PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users (id),
			book_id INT NOT NULL UNIQUE REFERENCES books (id) ON DELETE CASCADE,
			checkout_date DATE NOT NULL,
			due_date DATE NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// SeedDemoData inserts the built-in roles and a handful of demo users. Member
// provisioning is otherwise external; this only makes a fresh database usable.
func SeedDemoData(db *sqlx.DB) error {
	seeds := []string{
		`INSERT INTO roles (role)
		 VALUES ('patron'), ('librarian')
		 ON CONFLICT (role) DO NOTHING`,
		`INSERT INTO users (name, role_id)
		 SELECT 'Scrooge', id FROM roles WHERE role = 'librarian'
		 ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO users (name, role_id)
		 SELECT v.name, r.id
		   FROM (VALUES ('Dewey'), ('Huey'), ('Louie')) AS v (name)
		  CROSS JOIN roles r
		  WHERE r.role = 'patron'
		 ON CONFLICT (name) DO NOTHING`,
	}

	for _, seed := range seeds {
		if _, err := db.Exec(seed); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	return nil
}
