// internal/circulation/domain.go
package circulation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lending policy.
const (
	// MaxBooks is the number of simultaneous loans a member may hold.
	MaxBooks = 2
	// LoanPeriodDays is how long a member may keep a book before it is due.
	LoanPeriodDays = 14
)

var (
	ErrAlreadyCheckedOut = errors.New("book already checked out by this member")
	ErrBookUnavailable   = errors.New("book checked out by another member")
	ErrLimitExceeded     = errors.New("member has max books checked out")
	ErrHasOverdue        = errors.New("member has overdue books")
	ErrNotCheckedOut     = errors.New("book not checked out by this member")
)

// Loan is an active borrowing relationship. Its business identity is the
// (user, book) pair; the surrogate id only keys the database row.
type Loan struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	BookID       int64     `json:"book_id" db:"book_id"`
	CheckoutDate time.Time `json:"checkout_date" db:"checkout_date"`
	DueDate      time.Time `json:"due_date" db:"due_date"`
}

// BorrowedBook is a member's loan joined with the book it covers.
type BorrowedBook struct {
	BookID       int64     `json:"book_id" db:"book_id"`
	ISBN         string    `json:"isbn" db:"isbn"`
	Title        string    `json:"title" db:"title"`
	CheckoutDate time.Time `json:"checkout_date" db:"checkout_date"`
	DueDate      time.Time `json:"due_date" db:"due_date"`
}

// OverdueLoan is a loan past its due date joined with book and member.
type OverdueLoan struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	UserName     string    `json:"user_name" db:"user_name"`
	BookID       int64     `json:"book_id" db:"book_id"`
	ISBN         string    `json:"isbn" db:"isbn"`
	Title        string    `json:"title" db:"title"`
	CheckoutDate time.Time `json:"checkout_date" db:"checkout_date"`
	DueDate      time.Time `json:"due_date" db:"due_date"`
}

// AvailableBook is a catalog entry not currently on loan to anyone.
type AvailableBook struct {
	BookID int64  `json:"book_id" db:"book_id"`
	ISBN   string `json:"isbn" db:"isbn"`
	Title  string `json:"title" db:"title"`
}
