package uow

import (
	"context"

	"chamaledger/internal/domain/group"
	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/membership"
	"chamaledger/internal/domain/payment"
)

// Repos is the repository view handed to a transactional closure. Every
// repository in it is bound to the same transaction.
type Repos struct {
	Groups   group.Repository
	Members  membership.Repository
	Loans    loan.Repository
	Payments payment.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one storage transaction; fn returning an
	// error rolls everything back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up front and passes it to fn along
	// with transaction-bound repositories.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
