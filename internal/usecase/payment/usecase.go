package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/membership"
	"chamaledger/internal/domain/notify"
	"chamaledger/internal/domain/payment"
	"chamaledger/internal/domain/uow"
)

type Usecase struct {
	members  membership.Repository
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	notifier notify.Dispatcher
	// grace is how long a pending installment may sit past its due date
	// before it counts as defaulted.
	grace time.Duration
}

func NewUsecase(members membership.Repository, loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, n notify.Dispatcher, grace time.Duration) *Usecase {
	return &Usecase{members: members, loans: loans, payments: payments, uow: tx, notifier: n, grace: grace}
}

// Record settles one pending installment. On or before the due date the
// installment becomes paid; after it, late with a 5% penalty on the paid
// amount. The settlement and the loan-level consequences (completed when
// nothing is left pending, defaulted when another installment sat pending
// past the grace period as of the payment date) commit in one transaction
// under the loan row lock. Notifications go out after commit.
func (u *Usecase) Record(ctx context.Context, actorID string, in RecordPaymentInput) (*PaymentDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, &loan.ValidationError{Field: "amount", Reason: "must be a positive decimal"}
	}

	p, err := u.payments.GetByPaymentID(ctx, in.PaymentID)
	if err != nil {
		return nil, err
	}
	owner, err := u.loans.GetByID(ctx, p.LoanID)
	if err != nil {
		return nil, err
	}

	paidAt := in.PaidAt.UTC()
	var (
		settled   *payment.LoanPayment
		completed bool
		defaulted bool
	)
	err = u.uow.WithinLoanTx(ctx, owner.LoanID, func(r uow.Repos, cur *loan.Loan) error {
		target := payment.StatusPaid
		if paidAt.After(p.DueDate) {
			target = payment.StatusLate
		}

		if cur.Status != loan.StatusActive {
			return &payment.IllegalTransitionError{
				PaymentID: in.PaymentID, From: p.Status, To: target,
				Reason: fmt.Sprintf("loan %s is %s, not active", cur.LoanID, cur.Status),
			}
		}

		locked, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			return err
		}
		if locked.Status != payment.StatusPending {
			return &payment.IllegalTransitionError{PaymentID: in.PaymentID, From: locked.Status, To: target}
		}

		locked.Status = target
		locked.AmountPaid = in.Amount
		locked.Penalty = decimal.Zero
		if target == payment.StatusLate {
			locked.Penalty = payment.LatePenalty(in.Amount)
		}
		locked.PaidAt = &paidAt
		if err := r.Payments.Save(ctx, locked); err != nil {
			return err
		}

		rows, err := r.Payments.ListByLoanID(ctx, cur.ID)
		if err != nil {
			return err
		}
		var pending, overGrace []*payment.LoanPayment
		for _, row := range rows {
			if row.Status != payment.StatusPending {
				continue
			}
			pending = append(pending, row)
			if row.DueDate.Add(u.grace).Before(paidAt) {
				overGrace = append(overGrace, row)
			}
		}

		switch {
		case len(overGrace) > 0:
			for _, row := range overGrace {
				row.Status = payment.StatusDefaulted
				if err := r.Payments.Save(ctx, row); err != nil {
					return err
				}
			}
			if err := transition(ctx, r, cur, loan.StatusDefaulted); err != nil {
				return err
			}
			defaulted = true
		case len(pending) == 0:
			if err := transition(ctx, r, cur, loan.StatusCompleted); err != nil {
				return err
			}
			completed = true
		}

		settled = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = u.notifier.PaymentRecorded(ctx, actorID, settled)
	if completed || defaulted {
		if l, err := u.loans.GetByLoanID(ctx, owner.LoanID); err == nil {
			if completed {
				_ = u.notifier.LoanCompleted(ctx, l)
			} else {
				_ = u.notifier.LoanDefaulted(ctx, l)
			}
		}
	}
	return toDTO(settled, owner.LoanID), nil
}

// ListByLoan returns the loan's schedule, in order, to any active member of
// its group.
func (u *Usecase) ListByLoan(ctx context.Context, actorID, loanID string) ([]*PaymentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	m, err := u.members.GetByGroupAndMember(ctx, l.GroupID, actorID)
	if err != nil && !errors.Is(err, membership.ErrNotFound) {
		return nil, err
	}
	if membership.RoleOf(m) == membership.RoleNone {
		return nil, &membership.AuthorizationError{MemberID: actorID, Reason: "not an active member of the loan's group"}
	}

	rows, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*PaymentDTO, len(rows))
	for i, row := range rows {
		out[i] = toDTO(row, l.LoanID)
	}
	return out, nil
}

// MarkDefaults is the passive side of default detection: it finds pending
// installments whose due date fell more than the grace period before asOf,
// marks them defaulted, and moves their loans active → defaulted. It
// returns how many loans were defaulted. One broken loan does not stop the
// sweep; per-loan failures come back joined.
func (u *Usecase) MarkDefaults(ctx context.Context, asOf time.Time) (int, error) {
	cutoff := asOf.UTC().Add(-u.grace)
	overdue, err := u.payments.ListPendingDueBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	byLoan := make(map[uint64][]*payment.LoanPayment)
	for _, p := range overdue {
		byLoan[p.LoanID] = append(byLoan[p.LoanID], p)
	}

	var (
		defaulted int
		errs      []error
	)
	for loanDBID, ps := range byLoan {
		owner, err := u.loans.GetByID(ctx, loanDBID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		moved := false
		err = u.uow.WithinLoanTx(ctx, owner.LoanID, func(r uow.Repos, cur *loan.Loan) error {
			// Only an active loan can default; anything else was closed
			// between the scan and the lock.
			if cur.Status != loan.StatusActive {
				return nil
			}
			for _, p := range ps {
				locked, err := r.Payments.GetByPaymentIDForUpdate(ctx, p.PaymentID)
				if err != nil {
					return err
				}
				if locked.Status != payment.StatusPending {
					continue
				}
				locked.Status = payment.StatusDefaulted
				if err := r.Payments.Save(ctx, locked); err != nil {
					return err
				}
			}
			if err := transition(ctx, r, cur, loan.StatusDefaulted); err != nil {
				return err
			}
			moved = true
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("loan %s: %w", owner.LoanID, err))
			continue
		}
		if moved {
			defaulted++
			if l, err := u.loans.GetByLoanID(ctx, owner.LoanID); err == nil {
				_ = u.notifier.LoanDefaulted(ctx, l)
			}
		}
	}
	return defaulted, errors.Join(errs...)
}

// transition runs the compare-and-set from the locked loan's current
// status. The caller holds the row lock, so a miss means the state machine
// genuinely forbids the move.
func transition(ctx context.Context, r uow.Repos, cur *loan.Loan, to loan.Status) error {
	ok, err := r.Loans.TransitionStatus(ctx, cur.LoanID, cur.Status, to, map[string]any{
		"status_updated_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return &loan.IllegalTransitionError{LoanID: cur.LoanID, From: cur.Status, To: to}
	}
	return nil
}
