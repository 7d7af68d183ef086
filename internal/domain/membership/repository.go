package membership

import "context"

type Repository interface {
	Create(ctx context.Context, m *Membership) error
	// GetByGroupAndMember returns the membership row whether active or not;
	// callers use RoleOf to collapse "missing or inactive" into RoleNone.
	GetByGroupAndMember(ctx context.Context, groupID, memberID string) (*Membership, error)
	ListByGroupID(ctx context.Context, groupID string) ([]*Membership, error)
	Save(ctx context.Context, m *Membership) error
}
