package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("payment not found")

// IllegalTransitionError rejects settling an installment whose own status,
// or whose loan's status, does not allow it. Stored state is untouched.
type IllegalTransitionError struct {
	PaymentID string
	From      Status
	To        Status
	// Reason adds context when the block comes from outside the installment
	// itself, e.g. the owning loan not being active.
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("payment %s: illegal transition %s -> %s (%s)", e.PaymentID, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("payment %s: illegal transition %s -> %s", e.PaymentID, e.From, e.To)
}

type Status string

const (
	// StatusPending — scheduled, nothing recorded yet. The only status that
	// accepts a payment.
	StatusPending Status = "pending"
	// StatusPaid — settled on or before the due date, no penalty.
	StatusPaid Status = "paid"
	// StatusLate — settled after the due date; carries a penalty.
	StatusLate Status = "late"
	// StatusDefaulted — left pending past the grace period.
	StatusDefaulted Status = "defaulted"
)

// Settled reports whether money was recorded against the installment.
func (s Status) Settled() bool { return s == StatusPaid || s == StatusLate }

// LoanPayment is one scheduled installment of a loan's total repayable
// amount. Rows are created in bulk when the schedule is generated and
// afterwards only mutated, one at a time, by the payment recorder or the
// default sweep.
type LoanPayment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"size:32;uniqueIndex:ux_loan_payments_payment_id" json:"payment_id"`
	// LoanID is the numeric FK to loans.id.
	LoanID uint64 `gorm:"index:idx_loan_payments_loan" json:"-"`
	// Seq is the 1-based installment number within the schedule.
	Seq       int             `gorm:"column:seq" json:"seq"`
	AmountDue decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount_due"`
	// AmountPaid is what the member actually handed over; zero until settled.
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount_paid"`
	// Penalty is 5% of the paid amount for late settlements, zero otherwise.
	// Additive only — one late installment never compounds into the next.
	Penalty   decimal.Decimal `gorm:"type:decimal(18,2)" json:"penalty"`
	Status    Status          `gorm:"type:enum('pending','paid','late','defaulted');default:'pending'" json:"status"`
	DueDate   time.Time       `json:"due_date"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (LoanPayment) TableName() string { return "loan_payments" }

// PenaltyRatePct is the flat late-payment penalty: 5% of the amount paid.
var PenaltyRatePct = decimal.NewFromInt(5)

// LatePenalty computes the penalty for a late settlement of amountPaid,
// rounded to the currency's minor unit.
func LatePenalty(amountPaid decimal.Decimal) decimal.Decimal {
	return amountPaid.Mul(PenaltyRatePct).Div(decimal.NewFromInt(100)).Round(2)
}
