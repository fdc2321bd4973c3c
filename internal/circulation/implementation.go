// internal/circulation/implementation.go
package circulation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"libris/internal/catalog"
	"libris/internal/membership"
)

const pqUniqueViolation = "23505"

// service implements the Service interface.
type service struct {
	db        *sqlx.DB
	now       func() time.Time
	tracer    trace.Tracer
	checkouts metric.Int64Counter
	returns   metric.Int64Counter
}

// NewService creates a Postgres-backed circulation service.
func NewService(db *sqlx.DB) Service {
	meter := otel.Meter("libris/circulation")
	checkouts, _ := meter.Int64Counter("circulation.checkouts")
	returns, _ := meter.Int64Counter("circulation.returns")

	return &service{
		db:        db,
		now:       time.Now,
		tracer:    otel.Tracer("libris/circulation"),
		checkouts: checkouts,
		returns:   returns,
	}
}

// Checkout runs the eligibility checks and inserts the loan inside one
// serializable transaction, so a concurrent checkout of the same book or a
// concurrent checkout pushing the member over the limit cannot slip through
// the check-then-act sequence.
func (s *service) Checkout(ctx context.Context, member *membership.Member, bookID int64) error {
	ctx, span := s.tracer.Start(ctx, "circulation.checkout",
		trace.WithAttributes(
			attribute.Int64("member.id", member.ID),
			attribute.Int64("book.id", bookID),
		),
	)
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = bookExists(ctx, tx, bookID); err != nil {
		return err
	}

	view, err := loadLedgerView(ctx, tx, member.ID, bookID)
	if err != nil {
		return err
	}

	checkoutDate := s.now()
	if err = DecideCheckout(member.ID, view, checkoutDate); err != nil {
		span.SetAttributes(attribute.String("checkout.denied", err.Error()))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loans (id, user_id, book_id, checkout_date, due_date)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), member.ID, bookID, checkoutDate, checkoutDate.AddDate(0, 0, LoanPeriodDays))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			// Lost a race on the one-loan-per-book constraint.
			return ErrBookUnavailable
		}
		return fmt.Errorf("insert loan: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.checkouts.Add(ctx, 1)

	return nil
}

// Return deletes the member's loan for the book after checking it exists.
func (s *service) Return(ctx context.Context, member *membership.Member, bookID int64) error {
	ctx, span := s.tracer.Start(ctx, "circulation.return",
		trace.WithAttributes(
			attribute.Int64("member.id", member.ID),
			attribute.Int64("book.id", bookID),
		),
	)
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = bookExists(ctx, tx, bookID); err != nil {
		return err
	}

	view, err := loadLedgerView(ctx, tx, member.ID, bookID)
	if err != nil {
		return err
	}

	if err = DecideReturn(member.ID, view); err != nil {
		span.SetAttributes(attribute.String("return.denied", err.Error()))
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM loans WHERE user_id = $1 AND book_id = $2`, member.ID, bookID)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotCheckedOut
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.returns.Add(ctx, 1)

	return nil
}

func (s *service) Borrowed(ctx context.Context, memberID int64) ([]BorrowedBook, error) {
	const query = `
		SELECT b.id AS book_id,
		       b.isbn,
		       b.title,
		       l.checkout_date,
		       l.due_date
		  FROM loans l
		 INNER JOIN books b ON b.id = l.book_id
		 WHERE l.user_id = $1
	`

	borrowed := []BorrowedBook{}
	if err := s.db.SelectContext(ctx, &borrowed, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to list borrowed books: %w", err)
	}

	return borrowed, nil
}

func (s *service) Available(ctx context.Context) ([]AvailableBook, error) {
	const query = `
		SELECT id AS book_id, isbn, title
		  FROM books
		 WHERE id NOT IN (SELECT book_id FROM loans)
	`

	available := []AvailableBook{}
	if err := s.db.SelectContext(ctx, &available, query); err != nil {
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}

	return available, nil
}

func (s *service) Overdue(ctx context.Context, asOf time.Time) ([]OverdueLoan, error) {
	const query = `
		SELECT u.id AS user_id,
		       u.name AS user_name,
		       b.id AS book_id,
		       b.isbn,
		       b.title,
		       l.checkout_date,
		       l.due_date
		  FROM loans l
		 INNER JOIN books b ON b.id = l.book_id
		 INNER JOIN users u ON u.id = l.user_id
		 WHERE l.due_date <= $1::date
	`

	overdue := []OverdueLoan{}
	if err := s.db.SelectContext(ctx, &overdue, query, asOf); err != nil {
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	return overdue, nil
}

func bookExists(ctx context.Context, tx *sqlx.Tx, bookID int64) error {
	var exists bool
	err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID)
	if err != nil {
		return fmt.Errorf("check book %d: %w", bookID, err)
	}
	if !exists {
		return catalog.ErrBookNotFound
	}

	return nil
}

func loadLedgerView(ctx context.Context, tx *sqlx.Tx, memberID, bookID int64) (LedgerView, error) {
	view := LedgerView{}

	err := tx.SelectContext(ctx, &view.MemberLoans, `
		SELECT id, user_id, book_id, checkout_date, due_date
		  FROM loans
		 WHERE user_id = $1
	`, memberID)
	if err != nil {
		return view, fmt.Errorf("load member loans: %w", err)
	}

	loan := Loan{}
	err = tx.GetContext(ctx, &loan, `
		SELECT id, user_id, book_id, checkout_date, due_date
		  FROM loans
		 WHERE book_id = $1
	`, bookID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Book is not on loan to anyone.
	case err != nil:
		return view, fmt.Errorf("load book loan: %w", err)
	default:
		view.BookLoan = &loan
	}

	return view, nil
}
