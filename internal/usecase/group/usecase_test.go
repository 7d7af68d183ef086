package group

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	groupDomain "chamaledger/internal/domain/group"
	loanDomain "chamaledger/internal/domain/loan"
	memberDomain "chamaledger/internal/domain/membership"
	"chamaledger/internal/domain/uow"
	"chamaledger/internal/testutil/groupmock"
	"chamaledger/internal/testutil/membermock"
	"chamaledger/internal/testutil/uowmock"
)

var (
	gid     = strings.Repeat("1", 32)
	admin   = strings.Repeat("a", 32)
	admin2  = strings.Repeat("b", 32)
	member  = strings.Repeat("c", 32)
	joiner  = strings.Repeat("d", 32)
	nobody  = strings.Repeat("e", 32)
	dormant = strings.Repeat("f", 32)
)

// fixture keeps memberships in a map so reactivation and role changes can be
// asserted against what was actually saved.
type fixture struct {
	memberships map[string]*memberDomain.Membership // keyed by memberID, one group
	created     []*groupDomain.Group
	uc          *Usecase
}

func key(groupID, memberID string) string { return groupID + "/" + memberID }

func newFixture(t *testing.T, rows ...*memberDomain.Membership) *fixture {
	t.Helper()
	f := &fixture{memberships: make(map[string]*memberDomain.Membership)}
	for _, r := range rows {
		cp := *r
		f.memberships[key(r.GroupID, r.MemberID)] = &cp
	}

	groups := &groupmock.Repo{
		CreateFn: func(_ context.Context, g *groupDomain.Group) error {
			cp := *g
			f.created = append(f.created, &cp)
			return nil
		},
		GetByGroupIDFn: func(_ context.Context, groupID string) (*groupDomain.Group, error) {
			if groupID != gid {
				return nil, groupDomain.ErrNotFound
			}
			return &groupDomain.Group{ID: 1, GroupID: gid, Name: "Umoja"}, nil
		},
	}

	members := &membermock.Repo{
		CreateFn: func(_ context.Context, m *memberDomain.Membership) error {
			cp := *m
			f.memberships[key(m.GroupID, m.MemberID)] = &cp
			return nil
		},
		GetByGroupAndMemberFn: func(_ context.Context, groupID, memberID string) (*memberDomain.Membership, error) {
			m, ok := f.memberships[key(groupID, memberID)]
			if !ok {
				return nil, memberDomain.ErrNotFound
			}
			cp := *m
			return &cp, nil
		},
		ListByGroupIDFn: func(_ context.Context, groupID string) ([]*memberDomain.Membership, error) {
			var out []*memberDomain.Membership
			for _, m := range f.memberships {
				if m.GroupID == groupID {
					cp := *m
					out = append(out, &cp)
				}
			}
			return out, nil
		},
		SaveFn: func(_ context.Context, m *memberDomain.Membership) error {
			cp := *m
			f.memberships[key(m.GroupID, m.MemberID)] = &cp
			return nil
		},
	}

	repos := uow.Repos{Groups: groups, Members: members}
	f.uc = NewUsecase(groups, members, uowmock.Passthrough(repos))
	return f
}

func (f *fixture) stored(t *testing.T, memberID string) *memberDomain.Membership {
	t.Helper()
	m, ok := f.memberships[key(gid, memberID)]
	if !ok {
		t.Fatalf("membership %s not stored", memberID)
	}
	return m
}

func standardRows() []*memberDomain.Membership {
	return []*memberDomain.Membership{
		{GroupID: gid, MemberID: admin, Role: memberDomain.RoleAdmin, Active: true},
		{GroupID: gid, MemberID: member, Role: memberDomain.RoleMember, Active: true},
		{GroupID: gid, MemberID: dormant, Role: memberDomain.RoleMember, Active: false},
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	dto, err := f.uc.Create(context.Background(), admin, CreateGroupInput{
		Name:               "Umoja",
		InterestRatePct:    decimal.NewFromInt(5),
		ContributionAmount: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.GroupID == "" || dto.Name != "Umoja" {
		t.Errorf("group not built from input: %+v", dto)
	}
	if len(f.created) != 1 {
		t.Fatalf("groups stored = %d, want 1", len(f.created))
	}

	// the creator became the group's admin in the same transaction
	m, ok := f.memberships[key(dto.GroupID, admin)]
	if !ok {
		t.Fatal("creator membership not stored")
	}
	if m.Role != memberDomain.RoleAdmin || !m.Active {
		t.Errorf("creator membership = %+v, want active admin", m)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		in        CreateGroupInput
		wantField string
	}{
		{"empty name", CreateGroupInput{InterestRatePct: decimal.NewFromInt(5)}, "name"},
		{"negative rate", CreateGroupInput{Name: "x", InterestRatePct: decimal.NewFromInt(-1)}, "interest_rate_pct"},
		{"negative contribution", CreateGroupInput{Name: "x", ContributionAmount: decimal.NewFromInt(-1)}, "contribution_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Create(context.Background(), admin, tt.in)
			var ve *loanDomain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Fatalf("want ValidationError on %s, got %v", tt.wantField, err)
			}
			if len(f.created) != 0 {
				t.Errorf("nothing may be stored on a failed check")
			}
		})
	}
}

func TestJoin(t *testing.T) {
	f := newFixture(t, standardRows()...)

	dto, err := f.uc.Join(context.Background(), joiner, gid)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if dto.Role != string(memberDomain.RoleMember) || !dto.Active {
		t.Errorf("new membership = %+v, want active member", dto)
	}
}

func TestJoin_UnknownGroup(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Join(context.Background(), joiner, strings.Repeat("9", 32))
	if !errors.Is(err, groupDomain.ErrNotFound) {
		t.Fatalf("want group.ErrNotFound, got %v", err)
	}
}

func TestJoin_AlreadyActive(t *testing.T) {
	f := newFixture(t, standardRows()...)
	_, err := f.uc.Join(context.Background(), member, gid)
	var ve *loanDomain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "member_id" {
		t.Fatalf("want ValidationError on member_id, got %v", err)
	}
}

// Rejoining after deactivation reactivates the existing row and resets the
// role to member; no duplicate membership appears.
func TestJoin_ReactivatesDormantMembership(t *testing.T) {
	rows := standardRows()
	rows[2].Role = memberDomain.RoleTreasurer // was a treasurer before leaving
	f := newFixture(t, rows...)

	dto, err := f.uc.Join(context.Background(), dormant, gid)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !dto.Active || dto.Role != string(memberDomain.RoleMember) {
		t.Errorf("rejoined membership = %+v, want active member", dto)
	}
	got := f.stored(t, dormant)
	if !got.Active || got.Role != memberDomain.RoleMember {
		t.Errorf("stored row = %+v, want reactivated as member", got)
	}
}

func TestSetMemberRole(t *testing.T) {
	f := newFixture(t, standardRows()...)

	dto, err := f.uc.SetMemberRole(context.Background(), admin, gid, member, memberDomain.RoleTreasurer)
	if err != nil {
		t.Fatalf("SetMemberRole: %v", err)
	}
	if dto.Role != string(memberDomain.RoleTreasurer) {
		t.Errorf("role = %s, want treasurer", dto.Role)
	}
	if got := f.stored(t, member); got.Role != memberDomain.RoleTreasurer {
		t.Errorf("stored role = %s, want treasurer", got.Role)
	}
}

func TestSetMemberRole_AdminOnly(t *testing.T) {
	for _, actor := range []string{member, nobody} {
		f := newFixture(t, standardRows()...)
		_, err := f.uc.SetMemberRole(context.Background(), actor, gid, member, memberDomain.RoleTreasurer)
		var ae *memberDomain.AuthorizationError
		if !errors.As(err, &ae) {
			t.Fatalf("actor %s: want AuthorizationError, got %v", actor, err)
		}
	}
}

func TestSetMemberRole_InvalidRole(t *testing.T) {
	f := newFixture(t, standardRows()...)
	_, err := f.uc.SetMemberRole(context.Background(), admin, gid, member, memberDomain.Role("owner"))
	var ve *loanDomain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "role" {
		t.Fatalf("want ValidationError on role, got %v", err)
	}
}

func TestSetMemberRole_LastAdminGuard(t *testing.T) {
	f := newFixture(t, standardRows()...)

	// the only admin demoting themself
	_, err := f.uc.SetMemberRole(context.Background(), admin, gid, admin, memberDomain.RoleMember)
	var ve *loanDomain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "member_id" {
		t.Fatalf("want ValidationError on member_id, got %v", err)
	}
	if got := f.stored(t, admin); got.Role != memberDomain.RoleAdmin {
		t.Errorf("stored role mutated: %s", got.Role)
	}

	// with a second admin the demotion goes through
	rows := append(standardRows(), &memberDomain.Membership{GroupID: gid, MemberID: admin2, Role: memberDomain.RoleAdmin, Active: true})
	f = newFixture(t, rows...)
	dto, err := f.uc.SetMemberRole(context.Background(), admin, gid, admin, memberDomain.RoleMember)
	if err != nil {
		t.Fatalf("SetMemberRole with spare admin: %v", err)
	}
	if dto.Role != string(memberDomain.RoleMember) {
		t.Errorf("role = %s, want member", dto.Role)
	}
}

func TestDeactivateMember(t *testing.T) {
	f := newFixture(t, standardRows()...)

	dto, err := f.uc.DeactivateMember(context.Background(), admin, gid, member)
	if err != nil {
		t.Fatalf("DeactivateMember: %v", err)
	}
	if dto.Active {
		t.Errorf("membership still active after deactivation")
	}
	if got := f.stored(t, member); got.Active {
		t.Errorf("stored row still active")
	}
}

func TestDeactivateMember_LastAdminGuard(t *testing.T) {
	f := newFixture(t, standardRows()...)
	_, err := f.uc.DeactivateMember(context.Background(), admin, gid, admin)
	var ve *loanDomain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "member_id" {
		t.Fatalf("want ValidationError on member_id, got %v", err)
	}
	if got := f.stored(t, admin); !got.Active {
		t.Errorf("last admin deactivated anyway")
	}
}

func TestDeactivateMember_AlreadyInactiveTarget(t *testing.T) {
	f := newFixture(t, standardRows()...)
	_, err := f.uc.DeactivateMember(context.Background(), admin, gid, dormant)
	var ve *loanDomain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "member_id" {
		t.Fatalf("want ValidationError on member_id, got %v", err)
	}
}

func TestManageMembership_UnknownTarget(t *testing.T) {
	f := newFixture(t, standardRows()...)
	_, err := f.uc.SetMemberRole(context.Background(), admin, gid, nobody, memberDomain.RoleTreasurer)
	if !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("want membership.ErrNotFound, got %v", err)
	}
}
