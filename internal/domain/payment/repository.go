package payment

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBatch inserts a whole schedule in one statement.
	CreateBatch(ctx context.Context, ps []*LoanPayment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*LoanPayment, error)
	// GetByPaymentIDForUpdate locks the row for the enclosing transaction.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*LoanPayment, error)
	// ListByLoanID returns the loan's installments in schedule order.
	ListByLoanID(ctx context.Context, loanID uint64) ([]*LoanPayment, error)
	CountByLoanID(ctx context.Context, loanID uint64) (int64, error)
	// ListPendingDueBefore returns pending installments whose due date is
	// strictly before cutoff, across all loans. Feeds the default sweep.
	ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]*LoanPayment, error)
	Save(ctx context.Context, p *LoanPayment) error
}
