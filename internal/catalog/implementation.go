// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// service implements the Service interface over Postgres. Every write commits
// immediately; there is no batching.
type service struct {
	db *sqlx.DB
}

// NewService creates a Postgres-backed catalog service.
func NewService(db *sqlx.DB) Service {
	return &service{db: db}
}

func (s *service) ListBooks(ctx context.Context) ([]Book, error) {
	books := []Book{}
	if err := s.db.SelectContext(ctx, &books, `SELECT id, isbn, title FROM books`); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

func (s *service) ListBookDetails(ctx context.Context) ([]BookDetail, error) {
	const query = `
		SELECT b.id AS book_id,
		       b.isbn,
		       b.title,
		       u.id AS user_id,
		       u.name AS user_name,
		       l.checkout_date,
		       l.due_date
		  FROM books b
		  LEFT OUTER JOIN loans l ON l.book_id = b.id
		  LEFT OUTER JOIN users u ON u.id = l.user_id
	`

	details := []BookDetail{}
	if err := s.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("failed to list book details: %w", err)
	}

	return details, nil
}

func (s *service) GetBook(ctx context.Context, id int64) (*Book, error) {
	book := &Book{}
	err := s.db.GetContext(ctx, book, `SELECT id, isbn, title FROM books WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}

	return book, nil
}

func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	book := &Book{}
	err := s.db.GetContext(ctx, book, `SELECT id, isbn, title FROM books WHERE isbn = $1`, isbn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by isbn %s: %w", isbn, err)
	}

	return book, nil
}

// AddBook inserts a new book and returns its id. The unique index on isbn is
// the authoritative duplicate check, so concurrent inserts of the same ISBN
// cannot both succeed.
func (s *service) AddBook(ctx context.Context, isbn, title string) (int64, error) {
	if !ValidISBN(isbn) {
		return 0, ErrInvalidISBN
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO books (isbn, title) VALUES ($1, $2) RETURNING id`,
		isbn, title,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return 0, ErrDuplicateISBN
		}
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}

	return id, nil
}

func (s *service) RemoveBook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBookNotFound
	}

	return nil
}
