// internal/circulation/decide.go
package circulation

import "time"

// LedgerView is the slice of ledger state relevant to one (member, book) pair.
// It is projected fresh from the loans table on every request; no eligibility
// state is persisted anywhere else.
type LedgerView struct {
	// MemberLoans holds the member's active loans.
	MemberLoans []Loan
	// BookLoan is the active loan covering the requested book, nil if none.
	BookLoan *Loan
}

// DecideCheckout applies the checkout eligibility rules in order and returns
// the first violation, or nil when the member may check the book out.
//
// Rules, first failing check wins:
//  1. the book must not already be on loan to this member
//  2. the book must not be on loan to another member
//  3. the member must hold fewer than MaxBooks loans
//  4. none of the member's loans may be overdue
func DecideCheckout(memberID int64, view LedgerView, today time.Time) error {
	if view.BookLoan != nil {
		if view.BookLoan.UserID == memberID {
			return ErrAlreadyCheckedOut
		}
		return ErrBookUnavailable
	}

	if len(view.MemberLoans) >= MaxBooks {
		return ErrLimitExceeded
	}

	for _, loan := range view.MemberLoans {
		if Overdue(loan, today) {
			return ErrHasOverdue
		}
	}

	return nil
}

// DecideReturn checks that the member actually holds the requested book.
func DecideReturn(memberID int64, view LedgerView) error {
	if view.BookLoan == nil || view.BookLoan.UserID != memberID {
		return ErrNotCheckedOut
	}

	return nil
}

// Overdue reports whether the loan's due date is on or before today.
// Comparison is at calendar-day granularity, matching the DATE columns the
// ledger stores.
func Overdue(loan Loan, today time.Time) bool {
	y, m, d := today.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, loan.DueDate.Location())

	return !loan.DueDate.After(startOfToday)
}
