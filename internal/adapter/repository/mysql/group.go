package mysql

import (
	"context"

	"gorm.io/gorm"

	groupDomain "chamaledger/internal/domain/group"
)

type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) Create(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) GetByGroupID(ctx context.Context, groupID string) (*groupDomain.Group, error) {
	var out groupDomain.Group
	res := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&out)
	return &out, mapNotFound(res.Error, groupDomain.ErrNotFound)
}

func (r *GroupRepository) Save(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}
