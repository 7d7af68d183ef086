package group

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("group not found")

// Group is a savings/lending circle. The engine only reads its lending
// terms; contribution bookkeeping lives outside the loan engine.
type Group struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	GroupID string `gorm:"size:32;uniqueIndex:ux_groups_group_id_active" json:"group_id"`
	Name    string `gorm:"size:120" json:"name"`
	// InterestRatePct is the flat simple-interest rate (percent) applied to
	// new loans. Loans copy it at creation; changing it here never touches
	// existing loans.
	InterestRatePct    decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate_pct"`
	ContributionAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"contribution_amount"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "groups" }
