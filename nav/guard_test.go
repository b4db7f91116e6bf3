package nav

import (
	"testing"

	"sellmate/role"
)

func TestGuardAbsentTokenShowsSelection(t *testing.T) {
	for _, flow := range []Flow{FlowLogin, FlowSignup} {
		d := Guard(flow, "")
		if d.Outcome != ShowSelection {
			t.Fatalf("%s: expected selection view for absent token, got %v", flow, d.Outcome)
		}
	}
}

func TestGuardValidTokens(t *testing.T) {
	for _, r := range []role.Role{role.Buyer, role.Seller, role.Middleman, role.Admin} {
		d := Guard(FlowLogin, string(r))
		if d.Outcome != ShowRoleView || d.Role != r {
			t.Fatalf("login %s: expected role view, got %+v", r, d)
		}
	}
	for _, r := range []role.Role{role.Buyer, role.Seller, role.Middleman} {
		d := Guard(FlowSignup, string(r))
		if d.Outcome != ShowRoleView || d.Role != r {
			t.Fatalf("signup %s: expected role view, got %+v", r, d)
		}
	}
}

func TestGuardInvalidTokensRedirectToRoot(t *testing.T) {
	bad := []string{"xyz", "superuser", "buyer1", "Admin!", "mid dleman"}
	for _, flow := range []Flow{FlowLogin, FlowSignup} {
		for _, token := range bad {
			d := Guard(flow, token)
			if d.Outcome != Redirect || d.Target != "/" {
				t.Fatalf("%s %q: expected redirect to /, got %+v", flow, token, d)
			}
		}
	}
}

func TestGuardAdminIsLoginOnly(t *testing.T) {
	if d := Guard(FlowLogin, "admin"); d.Outcome != ShowRoleView || d.Role != role.Admin {
		t.Fatalf("login admin: expected role view, got %+v", d)
	}
	if d := Guard(FlowSignup, "admin"); d.Outcome != Redirect || d.Target != "/" {
		t.Fatalf("signup admin: expected redirect to /, got %+v", d)
	}
}
