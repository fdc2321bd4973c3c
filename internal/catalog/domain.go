// internal/catalog/domain.go
package catalog

import (
	"errors"
	"time"
)

var (
	ErrBookNotFound  = errors.New("book does not exist in library")
	ErrDuplicateISBN = errors.New("isbn already exists in library")
	ErrInvalidISBN   = errors.New("isbn is invalid")
)

// Book is a catalog entry. Books are created and removed by librarians and
// never mutated in place.
type Book struct {
	ID    int64  `json:"id" db:"id"`
	ISBN  string `json:"isbn" db:"isbn"`
	Title string `json:"title" db:"title"`
}

// BookDetail is a book joined with its current loan, if any. Books with no
// active loan carry null loan fields.
type BookDetail struct {
	BookID       int64      `json:"book_id" db:"book_id"`
	ISBN         string     `json:"isbn" db:"isbn"`
	Title        string     `json:"title" db:"title"`
	UserID       *int64     `json:"user_id" db:"user_id"`
	UserName     *string    `json:"user_name" db:"user_name"`
	CheckoutDate *time.Time `json:"checkout_date" db:"checkout_date"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`
}

// ValidISBN reports whether s is an all-digit string of length 10 or 13.
func ValidISBN(s string) bool {
	if len(s) != 10 && len(s) != 13 {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
