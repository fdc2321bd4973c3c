// internal/circulation/decide_test.go
package circulation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"libris/internal/circulation"
)

const (
	deweyID int64 = 1
	hueyID  int64 = 2
)

func givenLoan(userID, bookID int64, due time.Time) circulation.Loan {
	return circulation.Loan{
		ID:           uuid.New(),
		UserID:       userID,
		BookID:       bookID,
		CheckoutDate: due.AddDate(0, 0, -circulation.LoanPeriodDays),
		DueDate:      due,
	}
}

func Test_DecideCheckout_Success_WhenLedgerIsEmpty(t *testing.T) {
	err := circulation.DecideCheckout(deweyID, circulation.LedgerView{}, time.Now())

	assert.NoError(t, err)
}

func Test_DecideCheckout_Success_WhenMemberHoldsOneCurrentLoan(t *testing.T) {
	now := time.Now()
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{givenLoan(deweyID, 2, now.AddDate(0, 0, 7))},
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.NoError(t, err)
}

func Test_DecideCheckout_Fails_WhenBookAlreadyLentToSameMember(t *testing.T) {
	now := time.Now()
	bookLoan := givenLoan(deweyID, 1, now.AddDate(0, 0, 7))
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{bookLoan},
		BookLoan:    &bookLoan,
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrAlreadyCheckedOut)
}

func Test_DecideCheckout_Fails_WhenBookLentToAnotherMember(t *testing.T) {
	now := time.Now()
	bookLoan := givenLoan(hueyID, 1, now.AddDate(0, 0, 7))
	view := circulation.LedgerView{BookLoan: &bookLoan}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrBookUnavailable)
}

func Test_DecideCheckout_Fails_WhenMemberAtLoanLimit(t *testing.T) {
	now := time.Now()
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{
			givenLoan(deweyID, 2, now.AddDate(0, 0, 7)),
			givenLoan(deweyID, 3, now.AddDate(0, 0, 7)),
		},
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrLimitExceeded)
}

func Test_DecideCheckout_Fails_WhenMemberHasOverdueLoanOnUnrelatedBook(t *testing.T) {
	now := time.Now()
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{givenLoan(deweyID, 2, now.AddDate(0, 0, -7))},
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrHasOverdue)
}

func Test_DecideCheckout_TreatsLoanDueTodayAsOverdue(t *testing.T) {
	now := time.Now()
	y, m, d := now.Date()
	dueToday := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{givenLoan(deweyID, 2, dueToday)},
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrHasOverdue)
}

func Test_DecideCheckout_SelfLoanWinsOverLimit(t *testing.T) {
	// Both rules are violated; the duplicate-checkout rule is checked first.
	now := time.Now()
	bookLoan := givenLoan(deweyID, 1, now.AddDate(0, 0, 7))
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{
			bookLoan,
			givenLoan(deweyID, 2, now.AddDate(0, 0, 7)),
		},
		BookLoan: &bookLoan,
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrAlreadyCheckedOut)
}

func Test_DecideCheckout_LimitWinsOverOverdue(t *testing.T) {
	now := time.Now()
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{
			givenLoan(deweyID, 2, now.AddDate(0, 0, -7)),
			givenLoan(deweyID, 3, now.AddDate(0, 0, 7)),
		},
	}

	err := circulation.DecideCheckout(deweyID, view, now)

	assert.ErrorIs(t, err, circulation.ErrLimitExceeded)
}

func Test_DecideReturn_Success_WhenMemberHoldsBook(t *testing.T) {
	now := time.Now()
	bookLoan := givenLoan(deweyID, 1, now.AddDate(0, 0, 7))
	view := circulation.LedgerView{
		MemberLoans: []circulation.Loan{bookLoan},
		BookLoan:    &bookLoan,
	}

	err := circulation.DecideReturn(deweyID, view)

	assert.NoError(t, err)
}

func Test_DecideReturn_Fails_WhenBookNotOnLoan(t *testing.T) {
	err := circulation.DecideReturn(deweyID, circulation.LedgerView{})

	assert.ErrorIs(t, err, circulation.ErrNotCheckedOut)
}

func Test_DecideReturn_Fails_WhenBookLentToAnotherMember(t *testing.T) {
	now := time.Now()
	bookLoan := givenLoan(hueyID, 1, now.AddDate(0, 0, 7))
	view := circulation.LedgerView{BookLoan: &bookLoan}

	err := circulation.DecideReturn(deweyID, view)

	assert.ErrorIs(t, err, circulation.ErrNotCheckedOut)
}

func Test_Overdue(t *testing.T) {
	now := time.Now()

	assert.True(t, circulation.Overdue(givenLoan(deweyID, 1, now.AddDate(0, 0, -1)), now))
	assert.False(t, circulation.Overdue(givenLoan(deweyID, 1, now.AddDate(0, 0, 1)), now))
}
