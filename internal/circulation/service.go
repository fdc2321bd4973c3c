// internal/circulation/service.go
package circulation

import (
	"context"
	"time"

	"libris/internal/membership"
)

// Service defines the interface for the circulation service.
type Service interface {
	Checkout(ctx context.Context, member *membership.Member, bookID int64) error
	Return(ctx context.Context, member *membership.Member, bookID int64) error
	Borrowed(ctx context.Context, memberID int64) ([]BorrowedBook, error)
	Available(ctx context.Context) ([]AvailableBook, error)
	Overdue(ctx context.Context, asOf time.Time) ([]OverdueLoan, error)
}
