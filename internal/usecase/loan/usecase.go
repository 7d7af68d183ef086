package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/group"
	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/membership"
	"chamaledger/internal/domain/notify"
	"chamaledger/internal/domain/payment"
	"chamaledger/internal/domain/uow"
	"chamaledger/pkg/id"
)

type Usecase struct {
	groups   group.Repository
	members  membership.Repository
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	notifier notify.Dispatcher
}

// NewUsecase: read-path repos plus a UoW for the activation transaction.
func NewUsecase(groups group.Repository, members membership.Repository, loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, n notify.Dispatcher) *Usecase {
	return &Usecase{groups: groups, members: members, loans: loans, payments: payments, uow: tx, notifier: n}
}

// Create validates and authorizes a loan request, derives the frozen
// interest terms, and stores the loan as pending. With auto-approval it
// then runs the same approval flow the treasurer would trigger manually.
//
// Checks run in order and short-circuit; nothing is written until every
// check has passed.
func (u *Usecase) Create(ctx context.Context, requesterID string, in CreateLoanInput) (*LoanDTO, error) {
	g, err := u.groups.GetByGroupID(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	role, err := u.roleOf(ctx, g.GroupID, requesterID)
	if err != nil {
		return nil, err
	}
	if role == membership.RoleNone {
		return nil, &loan.ValidationError{Field: "group_id", Reason: "requester is not an active member of the group"}
	}
	if !in.Amount.IsPositive() {
		return nil, &loan.ValidationError{Field: "amount", Reason: "must be a positive decimal"}
	}
	now := time.Now().UTC()
	if !in.DueDate.After(now) {
		return nil, &loan.ValidationError{Field: "due_date", Reason: "must be strictly later than the current time"}
	}
	if !in.Frequency.Valid() {
		return nil, &loan.ValidationError{Field: "repayment_frequency", Reason: "must be one of lump_sum, weekly, monthly, quarterly, annual"}
	}

	borrowerID, autoApprove, err := membership.ResolveBorrower(requesterID, role, in.BorrowerID, in.AutoApprove)
	if err != nil {
		return nil, err
	}
	if borrowerID != requesterID {
		borrowerRole, err := u.roleOf(ctx, g.GroupID, borrowerID)
		if err != nil {
			return nil, err
		}
		if borrowerRole == membership.RoleNone {
			return nil, &membership.AuthorizationError{MemberID: borrowerID, Reason: "borrower is not an active member of the group"}
		}
	}

	// One open loan per borrower per group.
	open, err := u.loans.GetOpenByBorrower(ctx, g.GroupID, borrowerID)
	switch {
	case err == nil:
		return nil, &loan.ValidationError{Field: "borrower_id", Reason: fmt.Sprintf("borrower already has an open loan: %s", open.LoanID)}
	case !errors.Is(err, loan.ErrNotFound):
		return nil, err
	}

	l := &loan.Loan{
		LoanID:          id.NewID32(),
		GroupID:         g.GroupID,
		BorrowerID:      borrowerID,
		Principal:       in.Amount,
		InterestRatePct: g.InterestRatePct,
		TotalAmount:     loan.TotalRepayable(in.Amount, g.InterestRatePct),
		Purpose:         in.Purpose,
		Frequency:       in.Frequency,
		Status:          loan.StatusPending,
		DueDate:         in.DueDate.UTC(),
		StatusUpdatedAt: now,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	_ = u.notifier.LoanRequested(ctx, l)

	if autoApprove {
		return u.Approve(ctx, requesterID, l.LoanID)
	}
	return toDTO(l), nil
}

// Approve moves a pending loan to approved and then activates it. The
// approval itself is a compare-and-set on the pending status, so two
// concurrent approvals resolve to exactly one winner; the loser gets an
// IllegalTransitionError built from the state it lost to.
//
// Activation (schedule insert + approved → active) is a separate atomic
// transaction. If it fails the approval stands, a PartialFailureError is
// returned, and RepairSchedule finishes the job later.
func (u *Usecase) Approve(ctx context.Context, actorID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeDecision(ctx, actorID, l); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := u.loans.TransitionStatus(ctx, loanID, loan.StatusPending, loan.StatusApproved, map[string]any{
		"approver_id":       actorID,
		"approved_at":       now,
		"disbursed_at":      now,
		"status_updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, u.loseTransition(ctx, loanID, loan.StatusApproved)
	}

	l, err = u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	_ = u.notifier.LoanApproved(ctx, l)

	if err := u.activate(ctx, l); err != nil {
		return nil, &loan.PartialFailureError{LoanID: loanID, Stage: "schedule generation", Err: err}
	}

	l, err = u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	_ = u.notifier.LoanActivated(ctx, l)
	return toDTO(l), nil
}

// Reject moves a pending loan to rejected, recording who decided and when.
func (u *Usecase) Reject(ctx context.Context, actorID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeDecision(ctx, actorID, l); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := u.loans.TransitionStatus(ctx, loanID, loan.StatusPending, loan.StatusRejected, map[string]any{
		"approver_id":       actorID,
		"approved_at":       now,
		"status_updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, u.loseTransition(ctx, loanID, loan.StatusRejected)
	}

	l, err = u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	_ = u.notifier.LoanRejected(ctx, l)
	return toDTO(l), nil
}

// RepairSchedule re-runs activation for an approved loan left without a
// schedule by a partial failure. Idempotent: an active loan is a no-op
// success, and existing installment rows are never duplicated.
func (u *Usecase) RepairSchedule(ctx context.Context, actorID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeDecision(ctx, actorID, l); err != nil {
		return nil, err
	}

	switch l.Status {
	case loan.StatusActive:
		return toDTO(l), nil
	case loan.StatusApproved:
		// fall through to activation
	default:
		return nil, &loan.IllegalTransitionError{LoanID: loanID, From: l.Status, To: loan.StatusActive}
	}

	if err := u.activate(ctx, l); err != nil {
		return nil, err
	}
	l, err = u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	_ = u.notifier.LoanActivated(ctx, l)
	return toDTO(l), nil
}

// Get returns the loan to any active member of its group.
func (u *Usecase) Get(ctx context.Context, actorID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	role, err := u.roleOf(ctx, l.GroupID, actorID)
	if err != nil {
		return nil, err
	}
	if role == membership.RoleNone {
		return nil, &membership.AuthorizationError{MemberID: actorID, Reason: "not an active member of the loan's group"}
	}
	return toDTO(l), nil
}

// activate builds the schedule, bulk-inserts it, and flips approved →
// active, all in one transaction. Safe to re-run: installments already in
// place are kept, never re-inserted.
func (u *Usecase) activate(ctx context.Context, l *loan.Loan) error {
	if l.DisbursedAt == nil {
		return &loan.IllegalTransitionError{LoanID: l.LoanID, From: l.Status, To: loan.StatusActive}
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Payments.CountByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			installments, err := payment.BuildSchedule(l.TotalAmount, l.Frequency, *l.DisbursedAt, l.DueDate)
			if err != nil {
				return err
			}
			rows := make([]*payment.LoanPayment, len(installments))
			for i, ins := range installments {
				rows[i] = &payment.LoanPayment{
					PaymentID:  id.NewID32(),
					LoanID:     l.ID,
					Seq:        ins.Seq,
					AmountDue:  ins.Amount,
					AmountPaid: decimal.Zero,
					Penalty:    decimal.Zero,
					Status:     payment.StatusPending,
					DueDate:    ins.DueDate,
				}
			}
			if err := r.Payments.CreateBatch(ctx, rows); err != nil {
				return err
			}
		}

		ok, err := r.Loans.TransitionStatus(ctx, l.LoanID, loan.StatusApproved, loan.StatusActive, map[string]any{
			"status_updated_at": time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !ok {
			return &loan.IllegalTransitionError{LoanID: l.LoanID, From: l.Status, To: loan.StatusActive}
		}
		return nil
	})
}

// authorizeDecision gates approve/reject/repair: treasurer or admin of the
// loan's group, never the borrower themself.
func (u *Usecase) authorizeDecision(ctx context.Context, actorID string, l *loan.Loan) error {
	role, err := u.roleOf(ctx, l.GroupID, actorID)
	if err != nil {
		return err
	}
	if !role.CanManageLoans() {
		return &membership.AuthorizationError{MemberID: actorID, Reason: "only a treasurer or admin may decide loan requests"}
	}
	if actorID == l.BorrowerID {
		return &membership.AuthorizationError{MemberID: actorID, Reason: "deciding your own loan is not permitted"}
	}
	return nil
}

// loseTransition re-reads the loan after a failed compare-and-set so the
// error names the state the caller actually lost to.
func (u *Usecase) loseTransition(ctx context.Context, loanID string, to loan.Status) error {
	cur, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	return &loan.IllegalTransitionError{LoanID: loanID, From: cur.Status, To: to}
}

func (u *Usecase) roleOf(ctx context.Context, groupID, memberID string) (membership.Role, error) {
	m, err := u.members.GetByGroupAndMember(ctx, groupID, memberID)
	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			return membership.RoleNone, nil
		}
		return membership.RoleNone, err
	}
	return membership.RoleOf(m), nil
}
