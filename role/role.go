package role

import "strings"

// Role is the closed identity category a visitor acts under. It is kept in
// string form so it can travel through route parameters and cookies, but
// callers must go through Parse before trusting free text.
type Role string

const (
	Buyer     Role = "buyer"
	Seller    Role = "seller"
	Middleman Role = "middleman"
	Admin     Role = "admin"
)

// Metadata is the per-role presentation data consumed by the page shell and
// the role-selection cards. One entry exists per role; the table is loaded at
// process start and never mutated.
type Metadata struct {
	Title       string
	ColorToken  string
	Icon        string
	Description string
}

var metadata = map[Role]Metadata{
	Buyer: {
		Title:       "Buyer",
		ColorToken:  "blue",
		Icon:        "shopping-bag",
		Description: "Find trusted middlemen to help with your purchases",
	},
	Seller: {
		Title:       "Seller",
		ColorToken:  "green",
		Icon:        "store",
		Description: "Sell your products with secure transaction support",
	},
	Middleman: {
		Title:       "Middleman",
		ColorToken:  "purple",
		Icon:        "user-check",
		Description: "Facilitate safe exchanges between buyers and sellers",
	},
	Admin: {
		Title:       "Admin",
		ColorToken:  "red",
		Icon:        "shield",
		Description: "Operate and moderate the marketplace",
	},
}

// Parse validates an arbitrary token (typically a route segment) against the
// closed role set. It reports false for anything outside the set instead of
// failing, so route guards can treat bad tokens as malformed deep links.
func Parse(token string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(token)))
	if _, ok := metadata[r]; !ok {
		return "", false
	}
	return r, true
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := metadata[r]
	return ok
}

// MetadataFor returns the presentation metadata for r. It is total over the
// closed role set; unknown roles return the zero Metadata.
func MetadataFor(r Role) Metadata {
	return metadata[r]
}

// SignupRoles returns the roles a visitor may sign up as. Admin accounts are
// provisioned out of band and are reachable through login only.
func SignupRoles() []Role {
	return []Role{Buyer, Seller, Middleman}
}

// LoginRoles returns the roles a visitor may log in as.
func LoginRoles() []Role {
	return []Role{Buyer, Seller, Middleman, Admin}
}

// CanSignup reports whether r may be used in the signup flow.
func CanSignup(r Role) bool {
	return r == Buyer || r == Seller || r == Middleman
}
