package paymentmock

import (
	"context"
	"time"

	domain "chamaledger/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; nil getters return
// context.Canceled, nil mutators succeed.
type Repo struct {
	CreateBatchFn             func(ctx context.Context, ps []*domain.LoanPayment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.LoanPayment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.LoanPayment, error)
	ListByLoanIDFn            func(ctx context.Context, loanID uint64) ([]*domain.LoanPayment, error)
	CountByLoanIDFn           func(ctx context.Context, loanID uint64) (int64, error)
	ListPendingDueBeforeFn    func(ctx context.Context, cutoff time.Time) ([]*domain.LoanPayment, error)
	SaveFn                    func(ctx context.Context, p *domain.LoanPayment) error
}

func (m *Repo) CreateBatch(ctx context.Context, ps []*domain.LoanPayment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ps)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.LoanPayment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.LoanPayment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]*domain.LoanPayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountByLoanIDFn != nil {
		return m.CountByLoanIDFn(ctx, loanID)
	}
	return 0, context.Canceled
}

func (m *Repo) ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.LoanPayment, error) {
	if m.ListPendingDueBeforeFn != nil {
		return m.ListPendingDueBeforeFn(ctx, cutoff)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.LoanPayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
