// Package nav owns the role-gated navigation logic: the route guard that
// validates role segments on the auth routes, and the chrome view model the
// templates render on every other route.
package nav

import "sellmate/role"

// Flow identifies which auth flow a guarded route belongs to. Signup accepts
// a narrower role set than login: admin accounts are provisioned out of band
// and only ever log in.
type Flow int

const (
	FlowLogin Flow = iota
	FlowSignup
)

func (f Flow) String() string {
	if f == FlowSignup {
		return "signup"
	}
	return "login"
}

// Outcome is the guard's verdict for one navigation.
type Outcome int

const (
	// ShowSelection: no role segment present; render the role-selection
	// view. A terminal, valid state.
	ShowSelection Outcome = iota
	// ShowRoleView: the segment named a role valid for this flow.
	ShowRoleView
	// Redirect: the segment was malformed or out of set. Recover by
	// redirecting to the target; render nothing and surface no error, since
	// bad tokens are malformed deep links rather than user mistakes.
	Redirect
)

// Decision is the result of guarding one request.
type Decision struct {
	Outcome Outcome
	Role    role.Role
	Target  string
}

// Guard validates an optional role token extracted from the route. It runs
// on every request for the route, so edited URLs and deep links are checked
// exactly like first visits.
func Guard(flow Flow, token string) Decision {
	if token == "" {
		return Decision{Outcome: ShowSelection}
	}

	r, ok := role.Parse(token)
	if !ok {
		return Decision{Outcome: Redirect, Target: "/"}
	}
	if flow == FlowSignup && !role.CanSignup(r) {
		return Decision{Outcome: Redirect, Target: "/"}
	}
	return Decision{Outcome: ShowRoleView, Role: r}
}
