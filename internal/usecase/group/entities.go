package group

import (
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/group"
	"chamaledger/internal/domain/membership"
)

type CreateGroupInput struct {
	Name               string
	InterestRatePct    decimal.Decimal
	ContributionAmount decimal.Decimal
}

type GroupDTO struct {
	GroupID            string          `json:"group_id"`
	Name               string          `json:"name"`
	InterestRatePct    decimal.Decimal `json:"interest_rate_pct"`
	ContributionAmount decimal.Decimal `json:"contribution_amount"`
	CreatedAt          time.Time       `json:"created_at"`
}

type MembershipDTO struct {
	GroupID  string `json:"group_id"`
	MemberID string `json:"member_id"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func toGroupDTO(g *group.Group) *GroupDTO {
	return &GroupDTO{
		GroupID:            g.GroupID,
		Name:               g.Name,
		InterestRatePct:    g.InterestRatePct,
		ContributionAmount: g.ContributionAmount,
		CreatedAt:          g.CreatedAt,
	}
}

func toMembershipDTO(m *membership.Membership) *MembershipDTO {
	return &MembershipDTO{
		GroupID:  m.GroupID,
		MemberID: m.MemberID,
		Role:     string(m.Role),
		Active:   m.Active,
	}
}
