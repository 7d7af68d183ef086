package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type groupSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	GroupID            string          `gorm:"size:32;column:group_id"`
	Name               string          `gorm:"column:name"`
	InterestRatePct    decimal.Decimal `gorm:"type:decimal(6,2);column:interest_rate_pct"`
	ContributionAmount decimal.Decimal `gorm:"type:decimal(18,2);column:contribution_amount"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (groupSQLite) TableName() string { return "groups" }

type membershipSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	GroupID   string         `gorm:"size:32;column:group_id"`
	MemberID  string         `gorm:"size:32;column:member_id"`
	Role      string         `gorm:"type:text;column:role"` // ← no enum
	Active    bool           `gorm:"column:active"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (membershipSQLite) TableName() string { return "memberships" }

type loanSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	LoanID          string          `gorm:"size:32;column:loan_id"`
	GroupID         string          `gorm:"size:32;column:group_id"`
	BorrowerID      string          `gorm:"size:32;column:borrower_id"`
	ApproverID      string          `gorm:"size:32;column:approver_id"`
	Principal       decimal.Decimal `gorm:"type:decimal(18,2);column:principal"`
	InterestRatePct decimal.Decimal `gorm:"type:decimal(6,2);column:interest_rate_pct"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);column:total_amount"`
	Purpose         string          `gorm:"column:purpose"`
	Frequency       string          `gorm:"column:frequency"`
	Status          string          `gorm:"type:text;column:status"` // ← no enum
	DueDate         time.Time       `gorm:"column:due_date"`
	ApprovedAt      *time.Time      `gorm:"column:approved_at"`
	DisbursedAt     *time.Time      `gorm:"column:disbursed_at"`
	StatusUpdatedAt time.Time       `gorm:"column:status_updated_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type loanPaymentSQLite struct {
	ID         uint64          `gorm:"primaryKey;column:id"`
	PaymentID  string          `gorm:"size:32;column:payment_id"`
	LoanID     uint64          `gorm:"column:loan_id"`
	Seq        int             `gorm:"column:seq"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(18,2);column:amount_due"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,2);column:amount_paid"`
	Penalty    decimal.Decimal `gorm:"type:decimal(18,2);column:penalty"`
	Status     string          `gorm:"type:text;column:status"` // ← no enum
	DueDate    time.Time       `gorm:"column:due_date"`
	PaidAt     *time.Time      `gorm:"column:paid_at"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanPaymentSQLite) TableName() string { return "loan_payments" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema, never the domain models with their MySQL enums.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&groupSQLite{}, &membershipSQLite{}, &loanSQLite{}, &loanPaymentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
