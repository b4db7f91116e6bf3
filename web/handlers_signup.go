package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sellmate/funnel"
	"sellmate/nav"
	"sellmate/role"
	"sellmate/signup"
)

// handleSignup guards /signup and /signup/{role}. The selection view carries
// the terms dialog, whose state lives in the visitor's gate.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	d := nav.Guard(nav.FlowSignup, chi.URLParam(r, "role"))
	switch d.Outcome {
	case nav.Redirect:
		http.Redirect(w, r, d.Target, http.StatusFound)
	case nav.ShowSelection:
		_, gate := s.acquireGate(w, r)

		dialog := &TermsDialog{Sections: termsSections}
		if pending, ok := gate.Pending(); ok {
			dialog.Open = true
			dialog.Accepted = gate.Accepted()
			dialog.PendingRole = string(pending)
		}

		page := selectPage{
			basePage: s.basePageFor(r, Shell{
				Title:        "Sign Up",
				Subtitle:     "Select your role to create an account",
				StyleClass:   "auth-gradient",
				ShowBackLink: true,
				BackLinkURL:  "/",
			}),
			Flow:       "signup",
			Cards:      signupCards(),
			CrossText:  "Already have an account?",
			CrossHref:  "/login",
			CrossLabel: "Login",
			Terms:      dialog,
		}
		s.render(w, http.StatusOK, "select", page)
	case nav.ShowRoleView:
		meta := role.MetadataFor(d.Role)
		page := formPage{
			basePage: s.basePageFor(r, Shell{
				Title:        meta.Title + " Sign Up",
				Subtitle:     "Create your " + string(d.Role) + " account to get started",
				StyleClass:   "auth-gradient",
				ShowBackLink: true,
				BackLinkURL:  "/signup",
			}),
			Mode:       string(ModeSignup),
			Role:       string(d.Role),
			ShowCross:  true,
			CrossText:  "Already have an account?",
			CrossHref:  "/login/" + string(d.Role),
			CrossLabel: "Login",
		}
		s.render(w, http.StatusOK, "form", page)
	}
}

// handleSignupSelect stores a candidate role and opens the terms dialog.
// Session and route are untouched; a reselection overwrites the previous
// candidate and restarts the gate.
func (s *Server) handleSignupSelect(w http.ResponseWriter, r *http.Request) {
	gateID, gate := s.acquireGate(w, r)

	selected, ok := role.Parse(r.PostFormValue("role"))
	if !ok {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	if err := gate.SelectRole(selected); err != nil {
		// Not signup-eligible: treat like any malformed submission.
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	s.recordFunnel(r, funnel.Event{
		Type: funnel.EventRoleSelected,
		Role: selected,
		Meta: map[string]any{"gate_id": gateID},
	})
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

// handleSignupTerms flips the acceptance checkbox within a pending
// selection.
func (s *Server) handleSignupTerms(w http.ResponseWriter, r *http.Request) {
	gateID, gate := s.acquireGate(w, r)

	accepted := r.PostFormValue("accepted") == "true"
	if err := gate.SetAccepted(accepted); err != nil {
		// No pending selection: a stray post, nothing to arm.
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	if accepted {
		pending, _ := gate.Pending()
		s.recordFunnel(r, funnel.Event{
			Type: funnel.EventTermsAccepted,
			Role: pending,
			Meta: map[string]any{"gate_id": gateID},
		})
	}
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

// handleSignupDismiss closes the terms dialog without committing, discarding
// the pending selection. No navigation beyond returning to the selection
// view.
func (s *Server) handleSignupDismiss(w http.ResponseWriter, r *http.Request) {
	_, gate := s.acquireGate(w, r)
	gate.Dismiss()
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

// handleSignupConfirm commits the pending selection. Unaccepted terms leave
// the gate unchanged and the dialog inert; a clean commit triggers exactly
// one navigation to the role-specific signup form.
func (s *Server) handleSignupConfirm(w http.ResponseWriter, r *http.Request) {
	gateID, gate := s.acquireGate(w, r)

	committed, ok, err := gate.Confirm()
	if err != nil {
		if !errors.Is(err, signup.ErrTermsNotAccepted) {
			s.logger.Warn("terms gate confirm", "error", err)
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	if !ok {
		// Recoverable inconsistency: nothing pending, no navigation.
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	s.recordFunnel(r, funnel.Event{
		Type: funnel.EventSignupCommitted,
		Role: committed,
		Meta: map[string]any{"gate_id": gateID},
	})
	http.Redirect(w, r, "/signup/"+string(committed), http.StatusSeeOther)
}

// acquireGate returns the visitor's terms gate, minting a gate cookie when
// one is absent or stale.
func (s *Server) acquireGate(w http.ResponseWriter, r *http.Request) (string, *signup.Gate) {
	var id string
	if cookie, err := r.Cookie(gateCookie); err == nil {
		id = cookie.Value
	}
	newID, gate := s.gates.Acquire(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     gateCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return newID, gate
}
