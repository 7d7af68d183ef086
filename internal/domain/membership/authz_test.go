package membership

import (
	"errors"
	"testing"
)

func TestResolveBorrower(t *testing.T) {
	const requester = "a1b2c3"
	const other = "d4e5f6"

	tests := []struct {
		name         string
		role         Role
		target       string
		autoApprove  bool
		wantBorrower string
		wantAuto     bool
		wantAuthzErr bool
	}{
		{"non-member rejected", RoleNone, "", false, "", false, true},
		{"non-member rejected with target", RoleNone, other, false, "", false, true},

		{"member for self, empty target", RoleMember, "", false, requester, false, false},
		{"member for self, explicit target", RoleMember, requester, false, requester, false, false},
		{"member naming another", RoleMember, other, false, "", false, true},
		{"member auto-approving self", RoleMember, "", true, "", false, true},
		{"member auto-approving another", RoleMember, other, true, "", false, true},

		{"treasurer for self", RoleTreasurer, "", false, requester, false, false},
		{"treasurer for another", RoleTreasurer, other, false, other, false, false},
		{"treasurer auto-approving another", RoleTreasurer, other, true, other, true, false},
		{"treasurer auto-approving self", RoleTreasurer, "", true, "", false, true},
		{"treasurer auto-approving self, explicit", RoleTreasurer, requester, true, "", false, true},

		{"admin for self", RoleAdmin, requester, false, requester, false, false},
		{"admin for another", RoleAdmin, other, false, other, false, false},
		{"admin auto-approving another", RoleAdmin, other, true, other, true, false},
		{"admin auto-approving self", RoleAdmin, requester, true, "", false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			borrower, auto, err := ResolveBorrower(requester, tt.role, tt.target, tt.autoApprove)

			if tt.wantAuthzErr {
				var authzErr *AuthorizationError
				if !errors.As(err, &authzErr) {
					t.Fatalf("err = %v, want *AuthorizationError", err)
				}
				if authzErr.MemberID != requester {
					t.Errorf("AuthorizationError.MemberID = %q, want %q", authzErr.MemberID, requester)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if borrower != tt.wantBorrower {
				t.Errorf("borrower = %q, want %q", borrower, tt.wantBorrower)
			}
			if auto != tt.wantAuto {
				t.Errorf("autoApprove = %v, want %v", auto, tt.wantAuto)
			}
		})
	}
}

// A plain member never resolves to a borrower other than themself, whatever
// the flag combination.
func TestResolveBorrower_MemberNeverNamesAnother(t *testing.T) {
	for _, target := range []string{"ffff00", "0000aa", "someoneelse"} {
		for _, auto := range []bool{false, true} {
			if _, _, err := ResolveBorrower("self01", RoleMember, target, auto); err == nil {
				t.Errorf("target=%q auto=%v: expected AuthorizationError, got nil", target, auto)
			}
		}
	}
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		name string
		m    *Membership
		want Role
	}{
		{"nil membership", nil, RoleNone},
		{"inactive membership", &Membership{Role: RoleAdmin, Active: false}, RoleNone},
		{"active member", &Membership{Role: RoleMember, Active: true}, RoleMember},
		{"active treasurer", &Membership{Role: RoleTreasurer, Active: true}, RoleTreasurer},
		{"active admin", &Membership{Role: RoleAdmin, Active: true}, RoleAdmin},
	}
	for _, tt := range tests {
		if got := RoleOf(tt.m); got != tt.want {
			t.Errorf("%s: RoleOf = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleMember, RoleTreasurer, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("Valid(%q) = false", r)
		}
	}
	for _, r := range []Role{RoleNone, Role("owner"), Role("MEMBER")} {
		if r.Valid() {
			t.Errorf("Valid(%q) = true", r)
		}
	}
}

func TestCanManageLoans(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleNone, false},
		{RoleMember, false},
		{RoleTreasurer, true},
		{RoleAdmin, true},
	}
	for _, tt := range tests {
		if got := tt.role.CanManageLoans(); got != tt.want {
			t.Errorf("CanManageLoans(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
