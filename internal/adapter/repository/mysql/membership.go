package mysql

import (
	"context"

	"gorm.io/gorm"

	memberDomain "chamaledger/internal/domain/membership"
)

type MembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *memberDomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByGroupAndMember returns the row whether active or not; role
// resolution (including "not a member") is the domain's job.
func (r *MembershipRepository) GetByGroupAndMember(ctx context.Context, groupID, memberID string) (*memberDomain.Membership, error) {
	var out memberDomain.Membership
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		First(&out)
	return &out, mapNotFound(res.Error, memberDomain.ErrNotFound)
}

func (r *MembershipRepository) ListByGroupID(ctx context.Context, groupID string) ([]*memberDomain.Membership, error) {
	var out []*memberDomain.Membership
	res := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *MembershipRepository) Save(ctx context.Context, m *memberDomain.Membership) error {
	return r.db.WithContext(ctx).Save(m).Error
}
