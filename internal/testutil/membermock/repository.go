package membermock

import (
	"context"

	domain "chamaledger/internal/domain/membership"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, m *domain.Membership) error
	GetByGroupAndMemberFn func(ctx context.Context, groupID, memberID string) (*domain.Membership, error)
	ListByGroupIDFn       func(ctx context.Context, groupID string) ([]*domain.Membership, error)
	SaveFn                func(ctx context.Context, m *domain.Membership) error
}

func (m *Repo) Create(ctx context.Context, mem *domain.Membership) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mem)
	}
	return nil
}

func (m *Repo) GetByGroupAndMember(ctx context.Context, groupID, memberID string) (*domain.Membership, error) {
	if m.GetByGroupAndMemberFn != nil {
		return m.GetByGroupAndMemberFn(ctx, groupID, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByGroupID(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	if m.ListByGroupIDFn != nil {
		return m.ListByGroupIDFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, mem *domain.Membership) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, mem)
	}
	return nil
}

// Table is a convenience GetByGroupAndMember backed by a fixed set of rows,
// for tests that resolve several roles in one flow.
func Table(rows ...*domain.Membership) func(ctx context.Context, groupID, memberID string) (*domain.Membership, error) {
	return func(_ context.Context, groupID, memberID string) (*domain.Membership, error) {
		for _, r := range rows {
			if r.GroupID == groupID && r.MemberID == memberID {
				return r, nil
			}
		}
		return nil, domain.ErrNotFound
	}
}
