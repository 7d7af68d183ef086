package group

import (
	"context"
	"errors"

	"chamaledger/internal/domain/group"
	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/membership"
	"chamaledger/internal/domain/uow"
	"chamaledger/pkg/id"
)

type Usecase struct {
	groups  group.Repository
	members membership.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(groups group.Repository, members membership.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{groups: groups, members: members, uow: tx}
}

// Create stores a new group and makes the creator its admin, atomically. A
// group without an admin would be unmanageable, so the two writes share a
// transaction.
func (u *Usecase) Create(ctx context.Context, creatorID string, in CreateGroupInput) (*GroupDTO, error) {
	if in.Name == "" {
		return nil, &loan.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.InterestRatePct.IsNegative() {
		return nil, &loan.ValidationError{Field: "interest_rate_pct", Reason: "must not be negative"}
	}
	if in.ContributionAmount.IsNegative() {
		return nil, &loan.ValidationError{Field: "contribution_amount", Reason: "must not be negative"}
	}

	g := &group.Group{
		GroupID:            id.NewID32(),
		Name:               in.Name,
		InterestRatePct:    in.InterestRatePct,
		ContributionAmount: in.ContributionAmount,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Groups.Create(ctx, g); err != nil {
			return err
		}
		return r.Members.Create(ctx, &membership.Membership{
			GroupID:  g.GroupID,
			MemberID: creatorID,
			Role:     membership.RoleAdmin,
			Active:   true,
		})
	})
	if err != nil {
		return nil, err
	}
	return toGroupDTO(g), nil
}

// Join adds memberID to the group with the member role. A previously
// deactivated membership is reactivated rather than duplicated, reset to
// the member role.
func (u *Usecase) Join(ctx context.Context, memberID, groupID string) (*MembershipDTO, error) {
	g, err := u.groups.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	existing, err := u.members.GetByGroupAndMember(ctx, g.GroupID, memberID)
	switch {
	case err == nil:
		if existing.Active {
			return nil, &loan.ValidationError{Field: "member_id", Reason: "already an active member of the group"}
		}
		existing.Active = true
		existing.Role = membership.RoleMember
		if err := u.members.Save(ctx, existing); err != nil {
			return nil, err
		}
		return toMembershipDTO(existing), nil
	case !errors.Is(err, membership.ErrNotFound):
		return nil, err
	}

	m := &membership.Membership{
		GroupID:  g.GroupID,
		MemberID: memberID,
		Role:     membership.RoleMember,
		Active:   true,
	}
	if err := u.members.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMembershipDTO(m), nil
}

// SetMemberRole changes an active member's role. Admin only. Demoting the
// group's last admin is rejected; someone must keep the keys.
func (u *Usecase) SetMemberRole(ctx context.Context, actorID, groupID, memberID string, role membership.Role) (*MembershipDTO, error) {
	if !role.Valid() {
		return nil, &loan.ValidationError{Field: "role", Reason: "must be one of member, treasurer, admin"}
	}
	target, err := u.requireAdmin(ctx, actorID, groupID, memberID)
	if err != nil {
		return nil, err
	}

	if target.Role == membership.RoleAdmin && role != membership.RoleAdmin {
		if err := u.guardLastAdmin(ctx, groupID); err != nil {
			return nil, err
		}
	}

	target.Role = role
	if err := u.members.Save(ctx, target); err != nil {
		return nil, err
	}
	return toMembershipDTO(target), nil
}

// DeactivateMember removes a member from active duty while keeping the row
// so historical loans and payments stay resolvable. Admin only; the last
// admin cannot deactivate themself.
func (u *Usecase) DeactivateMember(ctx context.Context, actorID, groupID, memberID string) (*MembershipDTO, error) {
	target, err := u.requireAdmin(ctx, actorID, groupID, memberID)
	if err != nil {
		return nil, err
	}

	if target.Role == membership.RoleAdmin {
		if err := u.guardLastAdmin(ctx, groupID); err != nil {
			return nil, err
		}
	}

	target.Active = false
	if err := u.members.Save(ctx, target); err != nil {
		return nil, err
	}
	return toMembershipDTO(target), nil
}

// requireAdmin checks the actor is an active admin of the group and returns
// the target's active membership row.
func (u *Usecase) requireAdmin(ctx context.Context, actorID, groupID, memberID string) (*membership.Membership, error) {
	actor, err := u.members.GetByGroupAndMember(ctx, groupID, actorID)
	if err != nil && !errors.Is(err, membership.ErrNotFound) {
		return nil, err
	}
	if membership.RoleOf(actor) != membership.RoleAdmin {
		return nil, &membership.AuthorizationError{MemberID: actorID, Reason: "only a group admin may manage memberships"}
	}

	target, err := u.members.GetByGroupAndMember(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if !target.Active {
		return nil, &loan.ValidationError{Field: "member_id", Reason: "membership is deactivated"}
	}
	return target, nil
}

func (u *Usecase) guardLastAdmin(ctx context.Context, groupID string) error {
	all, err := u.members.ListByGroupID(ctx, groupID)
	if err != nil {
		return err
	}
	admins := 0
	for _, m := range all {
		if m.Active && m.Role == membership.RoleAdmin {
			admins++
		}
	}
	if admins <= 1 {
		return &loan.ValidationError{Field: "member_id", Reason: "the group's last admin cannot be demoted or deactivated"}
	}
	return nil
}
