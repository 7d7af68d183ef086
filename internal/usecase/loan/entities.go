package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/loan"
)

// CreateLoanInput carries a loan request after the transport layer has
// parsed shapes (ids, dates, numbers). GroupID comes from the route;
// BorrowerID is empty when the requester borrows for themself.
type CreateLoanInput struct {
	GroupID     string
	BorrowerID  string
	Amount      decimal.Decimal
	Purpose     string
	Frequency   loan.Frequency
	DueDate     time.Time
	AutoApprove bool
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	GroupID         string          `json:"group_id"`
	BorrowerID      string          `json:"borrower_id"`
	ApproverID      string          `json:"approver_id,omitempty"`
	Principal       decimal.Decimal `json:"principal"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Purpose         string          `json:"purpose,omitempty"`
	Frequency       string          `json:"repayment_frequency"`
	Status          string          `json:"status"`
	DueDate         time.Time       `json:"due_date"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	DisbursedAt     *time.Time      `json:"disbursed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		GroupID:         l.GroupID,
		BorrowerID:      l.BorrowerID,
		ApproverID:      l.ApproverID,
		Principal:       l.Principal,
		InterestRatePct: l.InterestRatePct,
		TotalAmount:     l.TotalAmount,
		Purpose:         l.Purpose,
		Frequency:       string(l.Frequency),
		Status:          string(l.Status),
		DueDate:         l.DueDate,
		ApprovedAt:      l.ApprovedAt,
		DisbursedAt:     l.DisbursedAt,
		CreatedAt:       l.CreatedAt,
	}
}
