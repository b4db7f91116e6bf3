package role

import "testing"

func TestParse(t *testing.T) {
	for _, token := range []string{"buyer", "seller", "middleman", "admin"} {
		r, ok := Parse(token)
		if !ok {
			t.Fatalf("expected %q to parse", token)
		}
		if string(r) != token {
			t.Fatalf("expected role %q got %q", token, r)
		}
	}

	if r, ok := Parse("  Seller "); !ok || r != Seller {
		t.Fatalf("expected trimmed, case-folded token to parse, got (%q, %v)", r, ok)
	}

	for _, token := range []string{"", "xyz", "superadmin", "buyers", "sell er"} {
		if r, ok := Parse(token); ok {
			t.Fatalf("expected %q to be rejected, got %q", token, r)
		}
	}
}

func TestValid(t *testing.T) {
	if !Seller.Valid() {
		t.Fatal("seller should be valid")
	}
	if Role("ghost").Valid() {
		t.Fatal("unknown role should be invalid")
	}
}

func TestMetadataCoversEveryRole(t *testing.T) {
	for _, r := range LoginRoles() {
		meta := MetadataFor(r)
		if meta.Title == "" || meta.ColorToken == "" || meta.Icon == "" || meta.Description == "" {
			t.Fatalf("incomplete metadata for role %s: %+v", r, meta)
		}
	}
}

func TestSignupExcludesAdmin(t *testing.T) {
	for _, r := range SignupRoles() {
		if r == Admin {
			t.Fatal("admin must not be offered for signup")
		}
		if !CanSignup(r) {
			t.Fatalf("role %s should be signup-eligible", r)
		}
	}
	if CanSignup(Admin) {
		t.Fatal("admin must not be signup-eligible")
	}
}
