package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusDefaulted Status = "defaulted"
)

// transitions is the authoritative edge set of the loan state machine.
// Anything not listed here is an illegal transition.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusActive},
	StatusActive:    {StatusCompleted, StatusDefaulted},
	StatusCompleted: {},
	StatusRejected:  {},
	StatusDefaulted: {},
}

// CanTransitionTo reports whether the status graph allows s → to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave s.
func (s Status) IsTerminal() bool { return len(transitions[s]) == 0 }

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Frequency tells the schedule generator how to slice the repayment period.
type Frequency string

const (
	FrequencyLumpSum   Frequency = "lump_sum"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyLumpSum, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// Loan is one borrowing obligation against a group's pool.
//
// InterestRatePct is copied from the group when the request is created and
// frozen; TotalAmount is derived once from Principal and that frozen rate.
// DueDate is fixed at creation — approval never moves it.
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	GroupID    string `gorm:"size:32;index:idx_loans_group" json:"group_id"`
	BorrowerID string `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	// ApproverID stays empty until the loan is approved or rejected. It is
	// never the borrower.
	ApproverID      string          `gorm:"size:32" json:"approver_id,omitempty"`
	Principal       decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRatePct decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate_pct"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	Frequency       Frequency       `gorm:"size:16" json:"repayment_frequency"`
	Status          Status          `gorm:"type:enum('pending','approved','active','completed','rejected','defaulted');default:'pending'" json:"status"`
	DueDate         time.Time       `json:"due_date"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	DisbursedAt     *time.Time      `json:"disbursed_at,omitempty"`
	StatusUpdatedAt time.Time       `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
