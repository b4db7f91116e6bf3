package signup

import (
	"errors"
	"testing"

	"sellmate/role"
)

func TestSelectRoleOpensGate(t *testing.T) {
	g := NewGate(nil)

	if err := g.SelectRole(role.Buyer); err != nil {
		t.Fatalf("select: %v", err)
	}
	if g.State() != StateSelected {
		t.Fatalf("expected selected state, got %s", g.State())
	}
	pending, ok := g.Pending()
	if !ok || pending != role.Buyer {
		t.Fatalf("expected pending buyer, got (%q, %v)", pending, ok)
	}
	if g.Accepted() {
		t.Fatal("acceptance must start false")
	}
}

func TestSelectRoleRejectsAdminAndUnknown(t *testing.T) {
	g := NewGate(nil)
	if err := g.SelectRole(role.Admin); !errors.Is(err, ErrRoleNotEligible) {
		t.Fatalf("expected ErrRoleNotEligible for admin, got %v", err)
	}
	if err := g.SelectRole(role.Role("xyz")); !errors.Is(err, ErrRoleNotEligible) {
		t.Fatalf("expected ErrRoleNotEligible for unknown role, got %v", err)
	}
	if g.State() != StateIdle {
		t.Fatalf("rejected selection must not change state, got %s", g.State())
	}
}

func TestReselectionOverwritesAndResetsAcceptance(t *testing.T) {
	g := NewGate(nil)

	if err := g.SelectRole(role.Buyer); err != nil {
		t.Fatalf("select buyer: %v", err)
	}
	if err := g.SetAccepted(true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := g.SelectRole(role.Seller); err != nil {
		t.Fatalf("select seller: %v", err)
	}
	pending, ok := g.Pending()
	if !ok || pending != role.Seller {
		t.Fatalf("expected pending seller after reselect, got (%q, %v)", pending, ok)
	}
	if g.Accepted() {
		t.Fatal("reselect must reset acceptance, even after a prior accept")
	}
}

func TestConfirmGuardedWhileUnaccepted(t *testing.T) {
	g := NewGate(nil)
	if err := g.SelectRole(role.Seller); err != nil {
		t.Fatalf("select: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, committed, err := g.Confirm(); !errors.Is(err, ErrTermsNotAccepted) || committed {
			t.Fatalf("attempt %d: expected inert ErrTermsNotAccepted, got committed=%v err=%v", i, committed, err)
		}
	}

	// The guard leaves the gate fully retryable.
	if g.State() != StateSelected {
		t.Fatalf("guard must not change state, got %s", g.State())
	}
	if pending, ok := g.Pending(); !ok || pending != role.Seller {
		t.Fatalf("guard must keep pending selection, got (%q, %v)", pending, ok)
	}
}

func TestConfirmCommitsOnce(t *testing.T) {
	g := NewGate(nil)
	if err := g.SelectRole(role.Seller); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := g.SetAccepted(true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	committed, ok, err := g.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !ok || committed != role.Seller {
		t.Fatalf("expected committed seller, got (%q, %v)", committed, ok)
	}
	if g.State() != StateCommitted {
		t.Fatalf("expected committed state, got %s", g.State())
	}
	if g.Accepted() {
		t.Fatal("confirm must reset acceptance for the next attempt")
	}
	if _, ok := g.Pending(); ok {
		t.Fatal("confirm must consume the pending selection")
	}

	// A second confirm finds nothing pending: no-op, no navigation.
	if _, ok, err := g.Confirm(); err != nil || ok {
		t.Fatalf("second confirm must be a silent no-op, got ok=%v err=%v", ok, err)
	}
}

func TestDismissDiscardsSelection(t *testing.T) {
	g := NewGate(nil)
	if err := g.SelectRole(role.Middleman); err != nil {
		t.Fatalf("select: %v", err)
	}
	g.Dismiss()

	if g.State() != StateIdle {
		t.Fatalf("expected idle after dismiss, got %s", g.State())
	}
	if _, ok := g.Pending(); ok {
		t.Fatal("dismiss must discard the pending selection")
	}
	if _, ok, err := g.Confirm(); err != nil || ok {
		t.Fatalf("confirm after dismiss must be a no-op, got ok=%v err=%v", ok, err)
	}
}

func TestDismissWhileIdleIsHarmless(t *testing.T) {
	g := NewGate(nil)
	g.Dismiss()
	if g.State() != StateIdle {
		t.Fatalf("expected idle, got %s", g.State())
	}
}

func TestSetAcceptedRequiresSelection(t *testing.T) {
	g := NewGate(nil)
	if err := g.SetAccepted(true); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	// A stray accept must not pre-arm the next selection.
	if err := g.SelectRole(role.Buyer); err != nil {
		t.Fatalf("select: %v", err)
	}
	if g.Accepted() {
		t.Fatal("new selection must start unaccepted")
	}
}

func TestAbandonClearsAnyState(t *testing.T) {
	g := NewGate(nil)
	if err := g.SelectRole(role.Buyer); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := g.SetAccepted(true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	g.Abandon()

	if g.State() != StateIdle {
		t.Fatalf("expected idle after abandon, got %s", g.State())
	}
	if g.Accepted() {
		t.Fatal("abandon must reset acceptance")
	}
}
