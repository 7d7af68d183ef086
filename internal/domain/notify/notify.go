package notify

import (
	"context"

	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/payment"
)

// Dispatcher delivers loan and payment events to members. Delivery is
// fire-and-forget: the engine never rolls back committed state because a
// notification failed, so callers ignore the returned error after logging.
type Dispatcher interface {
	LoanRequested(ctx context.Context, l *loan.Loan) error
	LoanApproved(ctx context.Context, l *loan.Loan) error
	LoanRejected(ctx context.Context, l *loan.Loan) error
	LoanActivated(ctx context.Context, l *loan.Loan) error
	LoanCompleted(ctx context.Context, l *loan.Loan) error
	LoanDefaulted(ctx context.Context, l *loan.Loan) error
	PaymentRecorded(ctx context.Context, actorID string, p *payment.LoanPayment) error
}
