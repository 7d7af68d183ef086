package loan

import "context"

// Repository is the loan store. Lookups return ErrNotFound when no row
// matches.
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the enclosing transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetOpenByBorrower returns the borrower's most recent non-terminal loan
	// in the group (pending, approved, or active), or ErrNotFound.
	GetOpenByBorrower(ctx context.Context, groupID, borrowerID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	// TransitionStatus performs a conditional update guarded on the current
	// status (compare-and-set). It applies the extra column updates together
	// with the new status and reports whether the guard matched a row —
	// false means a concurrent writer got there first or the loan was not
	// in the expected state.
	TransitionStatus(ctx context.Context, loanID string, from, to Status, updates map[string]any) (bool, error)
}
