package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/payment"
)

// RecordPaymentInput is one settlement attempt against a single pending
// installment. PaidAt is the date the money changed hands, which may be
// earlier than the request when cash is recorded after the fact.
type RecordPaymentInput struct {
	PaymentID string
	Amount    decimal.Decimal
	PaidAt    time.Time
}

type PaymentDTO struct {
	PaymentID  string          `json:"payment_id"`
	LoanID     string          `json:"loan_id"`
	Seq        int             `json:"seq"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Penalty    decimal.Decimal `json:"penalty"`
	Status     string          `json:"status"`
	DueDate    time.Time       `json:"due_date"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

func toDTO(p *payment.LoanPayment, loanID string) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:  p.PaymentID,
		LoanID:     loanID,
		Seq:        p.Seq,
		AmountDue:  p.AmountDue,
		AmountPaid: p.AmountPaid,
		Penalty:    p.Penalty,
		Status:     string(p.Status),
		DueDate:    p.DueDate,
		PaidAt:     p.PaidAt,
	}
}
