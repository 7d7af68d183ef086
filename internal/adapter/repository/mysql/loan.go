package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "chamaledger/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, mapNotFound(res.Error, loanDomain.ErrNotFound)
}

// GetByLoanIDForUpdate locks the loan row for the enclosing transaction.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, mapNotFound(res.Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, mapNotFound(res.Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetOpenByBorrower(ctx context.Context, groupID, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND borrower_id = ? AND status IN ?", groupID, borrowerID,
			[]loanDomain.Status{loanDomain.StatusPending, loanDomain.StatusApproved, loanDomain.StatusActive}).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, mapNotFound(res.Error, loanDomain.ErrNotFound)
}

// TransitionStatus is the compare-and-set behind every loan state change:
// UPDATE ... SET status = to, <updates> WHERE loan_id = ? AND status = from.
// Zero rows affected means the guard did not match — either the loan is in
// another state or a concurrent writer won the race.
func (r *LoanRepository) TransitionStatus(ctx context.Context, loanID string, from, to loanDomain.Status, updates map[string]any) (bool, error) {
	cols := map[string]any{"status": to}
	for k, v := range updates {
		cols[k] = v
	}
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND status = ?", loanID, from).
		Updates(cols)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// mapNotFound translates gorm's sentinel into the aggregate's own.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
