package domain

import "testing"

func TestRole_CanMutate(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleViewer, false},
		{Role("guest"), false},
		{Role(""), false},
	}

	for _, tc := range cases {
		if got := tc.role.CanMutate(); got != tc.want {
			t.Errorf("CanMutate(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleViewer} {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	for _, r := range []Role{"", "guest", "Admin"} {
		if r.Valid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}
}
