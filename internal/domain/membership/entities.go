package membership

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("membership not found")

// Role is the closed set of membership roles. RoleNone is the zero value
// returned by the role resolver for non-members; it is never stored.
type Role string

const (
	RoleNone      Role = ""
	RoleMember    Role = "member"
	RoleTreasurer Role = "treasurer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a storable role.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTreasurer, RoleAdmin:
		return true
	}
	return false
}

// CanManageLoans reports whether the role may approve, reject, or create
// loans on behalf of other members.
func (r Role) CanManageLoans() bool { return r == RoleTreasurer || r == RoleAdmin }

// Membership associates a member with a group. Exactly one row per
// (group, member); removal deactivates the row so historical loans and
// payments keep their references.
type Membership struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	GroupID   string         `gorm:"size:32;uniqueIndex:ux_memberships_group_member" json:"group_id"`
	MemberID  string         `gorm:"size:32;uniqueIndex:ux_memberships_group_member;index:idx_memberships_member" json:"member_id"`
	Role      Role           `gorm:"type:enum('member','treasurer','admin');default:'member'" json:"role"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Membership) TableName() string { return "memberships" }

// RoleOf resolves a membership lookup result to a role. A missing or
// deactivated membership is RoleNone — a valid outcome, not an error.
func RoleOf(m *Membership) Role {
	if m == nil || !m.Active {
		return RoleNone
	}
	return m.Role
}
