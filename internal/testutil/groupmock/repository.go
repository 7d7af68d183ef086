package groupmock

import (
	"context"

	domain "chamaledger/internal/domain/group"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, g *domain.Group) error
	GetByGroupIDFn func(ctx context.Context, groupID string) (*domain.Group, error)
	SaveFn         func(ctx context.Context, g *domain.Group) error
}

func (m *Repo) Create(ctx context.Context, g *domain.Group) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) GetByGroupID(ctx context.Context, groupID string) (*domain.Group, error) {
	if m.GetByGroupIDFn != nil {
		return m.GetByGroupIDFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, g *domain.Group) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}
