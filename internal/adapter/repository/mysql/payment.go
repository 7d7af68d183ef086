package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	paymentDomain "chamaledger/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

// CreateBatch inserts a whole schedule in one statement.
func (r *PaymentRepository) CreateBatch(ctx context.Context, ps []*paymentDomain.LoanPayment) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(ps).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.LoanPayment, error) {
	var out paymentDomain.LoanPayment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, mapNotFound(res.Error, paymentDomain.ErrNotFound)
}

// GetByPaymentIDForUpdate locks the installment row for the enclosing
// transaction, so two recorders can never settle the same installment.
func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.LoanPayment, error) {
	var out paymentDomain.LoanPayment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out)
	return &out, mapNotFound(res.Error, paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*paymentDomain.LoanPayment, error) {
	var out []*paymentDomain.LoanPayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("seq ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) CountByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.LoanPayment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}

func (r *PaymentRepository) ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]*paymentDomain.LoanPayment, error) {
	var out []*paymentDomain.LoanPayment
	res := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", paymentDomain.StatusPending, cutoff).
		Order("loan_id ASC, seq ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.LoanPayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}
