package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"sellmate/role"
)

func TestIssueAndParse(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, issued, err := mgr.Issue(role.Seller)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("issue: expected token, got empty string")
	}
	if issued.ID == "" {
		t.Fatal("issue: expected session id")
	}
	if !issued.Authenticated {
		t.Fatal("issue: session should be authenticated")
	}

	parsed, err := mgr.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.ID != issued.ID {
		t.Fatalf("parse: expected session id %q got %q", issued.ID, parsed.ID)
	}
	if parsed.Role != role.Seller {
		t.Fatalf("parse: expected role %s got %s", role.Seller, parsed.Role)
	}
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, _, err := mgr.Issue(role.Role("ghost")); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
}

func TestParseRejectsGarbageAndForeignSignatures(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	if _, err := mgr.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}

	other, err := NewManager("different-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, _, err := other.Issue(role.Buyer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, _, err := mgr.Issue(role.Buyer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := mgr.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatal("empty context should carry no session")
	}
	sess := Session{ID: "abc", Role: role.Middleman, Authenticated: true}
	got, ok := FromContext(NewContext(ctx, sess))
	if !ok {
		t.Fatal("expected session in context")
	}
	if got.Role != role.Middleman {
		t.Fatalf("expected role %s got %s", role.Middleman, got.Role)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
