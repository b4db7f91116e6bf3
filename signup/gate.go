// Package signup implements the terms-of-service gate that stands between a
// role selection on the signup page and the route commitment to the
// role-specific signup form.
package signup

import (
	"errors"
	"log/slog"
	"sync"

	"sellmate/role"
)

var (
	// ErrTermsNotAccepted signals a confirm attempt before the terms were
	// accepted. The affordance stays inert and retryable; this is a guard,
	// not a failure.
	ErrTermsNotAccepted = errors.New("signup: terms not accepted")
	// ErrRoleNotEligible signals a selection outside the signup role set.
	ErrRoleNotEligible = errors.New("signup: role not eligible for signup")
	// ErrNoSelection signals a gate action that requires a pending selection
	// while the gate is idle.
	ErrNoSelection = errors.New("signup: no pending selection")
)

// State is the gate's position in the signup confirmation flow.
type State int

const (
	// StateIdle: no pending selection, terms dialog closed.
	StateIdle State = iota
	// StateSelected: a candidate role is pending, terms dialog open.
	StateSelected
	// StateCommitted: the selection was confirmed and consumed into a route
	// transition. Terminal for one signup attempt.
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Gate is the per-visitor terms acceptance state machine. A candidate role
// chosen on the signup page is held as a pending selection until the visitor
// accepts the terms and confirms; only then does it become a navigation
// target. The pending selection never touches the session.
//
// All methods are safe for concurrent use, though a single visitor drives one
// gate at a time.
type Gate struct {
	mu       sync.Mutex
	state    State
	pending  role.Role
	accepted bool
	logger   *slog.Logger
}

// NewGate returns an idle gate. A nil logger falls back to slog.Default.
func NewGate(logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{state: StateIdle, logger: logger}
}

// State returns the gate's current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Pending returns the pending selection, if any.
func (g *Gate) Pending() (role.Role, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSelected {
		return "", false
	}
	return g.pending, true
}

// Accepted reports whether the terms checkbox is ticked.
func (g *Gate) Accepted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accepted
}

// SelectRole stores r as the pending selection and opens the terms dialog.
// Selecting while a selection is already pending overwrites it and resets
// acceptance, starting the gate over; the two selections are never merged.
// Session and route state are untouched.
func (g *Gate) SelectRole(r role.Role) error {
	if !role.CanSignup(r) {
		return ErrRoleNotEligible
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateSelected
	g.pending = r
	g.accepted = false
	return nil
}

// SetAccepted flips the terms acceptance flag within a pending selection. It
// does not transition state. Outside a selection it reports ErrNoSelection
// so a stray form post cannot pre-accept the next attempt.
func (g *Gate) SetAccepted(checked bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSelected {
		return ErrNoSelection
	}
	g.accepted = checked
	return nil
}

// Dismiss closes the terms dialog without committing, discarding the pending
// selection. Every dismissal path of the dialog routes through here. No
// navigation occurs.
func (g *Gate) Dismiss() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSelected {
		return
	}
	g.reset()
}

// Abandon discards any pending selection when the visitor navigates away
// from the signup flow. Committed gates also reset so a later visit starts
// clean.
func (g *Gate) Abandon() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// Confirm commits the pending selection. While the terms are unaccepted it
// reports ErrTermsNotAccepted and changes nothing. On success it closes the
// dialog, resets acceptance for the next attempt, consumes the pending
// selection and returns it; the caller performs exactly one navigation to
// the role-specific signup route.
//
// A confirm with no pending selection should be unreachable under correct
// sequencing; it is treated as a recoverable inconsistency and becomes a
// logged no-op with no navigation.
func (g *Gate) Confirm() (role.Role, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateSelected || g.pending == "" {
		g.logger.Warn("terms gate confirmed with no pending selection",
			"state", g.state.String(),
		)
		g.reset()
		return "", false, nil
	}
	if !g.accepted {
		return "", false, ErrTermsNotAccepted
	}

	committed := g.pending
	g.state = StateCommitted
	g.accepted = false
	g.pending = ""
	return committed, true, nil
}

// reset returns the gate to idle. Callers hold g.mu.
func (g *Gate) reset() {
	g.state = StateIdle
	g.pending = ""
	g.accepted = false
}
