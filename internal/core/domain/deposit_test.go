package domain

import "testing"

func TestDepositStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to DepositStatus
		want     bool
	}{
		{StatusPending, StatusResponded, true},
		{StatusResponded, StatusAccepted, true},
		{StatusResponded, StatusDisputed, true},
		{StatusPending, StatusAccepted, false},
		{StatusPending, StatusDisputed, false},
		{StatusResponded, StatusPending, false},
		{StatusAccepted, StatusPending, false},
		{StatusAccepted, StatusResponded, false},
		{StatusAccepted, StatusDisputed, false},
		{StatusDisputed, StatusPending, false},
		{StatusDisputed, StatusResponded, false},
		{StatusDisputed, StatusAccepted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDepositStatus_Terminal(t *testing.T) {
	if StatusPending.Terminal() || StatusResponded.Terminal() {
		t.Fatalf("pending/responded must not be terminal")
	}
	if !StatusAccepted.Terminal() || !StatusDisputed.Terminal() {
		t.Fatalf("accepted/disputed must be terminal")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleTenant, RoleLandlord, RoleAgent} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "admin", "Tenant"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true", r)
		}
	}
	if CanRespond(RoleTenant) {
		t.Fatalf("tenant must not be allowed to respond")
	}
	if !CanRespond(RoleLandlord) || !CanRespond(RoleAgent) {
		t.Fatalf("landlord and agent must be allowed to respond")
	}
}
