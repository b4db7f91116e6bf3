package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sellmate/funnel"
	"sellmate/nav"
	"sellmate/role"
	"sellmate/session"
)

type selectPage struct {
	basePage
	Flow       string
	Cards      []RoleCard
	CrossText  string
	CrossHref  string
	CrossLabel string
	Terms      *TermsDialog
}

type formPage struct {
	basePage
	Mode       string
	Role       string
	Error      string
	ShowCross  bool
	CrossText  string
	CrossHref  string
	CrossLabel string
}

// handleLogin guards /login and /login/{role}. The guard runs on every
// request, so edited URLs and deep links get the same treatment as clicks.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	d := nav.Guard(nav.FlowLogin, chi.URLParam(r, "role"))
	switch d.Outcome {
	case nav.Redirect:
		http.Redirect(w, r, d.Target, http.StatusFound)
	case nav.ShowSelection:
		page := selectPage{
			basePage: s.basePageFor(r, Shell{
				Title:        "Login",
				Subtitle:     "Welcome back! Please select your account type.",
				StyleClass:   "auth-gradient",
				ShowBackLink: true,
				BackLinkURL:  "/",
			}),
			Flow:       "login",
			Cards:      loginCards(),
			CrossText:  "Don't have an account?",
			CrossHref:  "/signup",
			CrossLabel: "Sign up",
		}
		s.render(w, http.StatusOK, "select", page)
	case nav.ShowRoleView:
		meta := role.MetadataFor(d.Role)
		page := formPage{
			basePage: s.basePageFor(r, Shell{
				Title:        meta.Title + " Login",
				Subtitle:     "Welcome back! Login to access your " + string(d.Role) + " dashboard.",
				StyleClass:   "auth-gradient",
				ShowBackLink: true,
				BackLinkURL:  "/login",
			}),
			Mode: string(ModeLogin),
			Role: string(d.Role),
		}
		if d.Role != role.Admin {
			page.ShowCross = true
			page.CrossText = "Don't have an account?"
			page.CrossHref = "/signup/" + string(d.Role)
			page.CrossLabel = "Sign up"
		}
		s.render(w, http.StatusOK, "form", page)
	}
}

// handleAuthSubmit is the auth-form completion boundary and, with
// handleLogout, the only writer of the session cookie.
func (s *Server) handleAuthSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	mode := AuthMode(r.PostFormValue("mode"))
	if mode != ModeLogin && mode != ModeSignup {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	requested, ok := role.Parse(r.PostFormValue("role"))
	if !ok || (mode == ModeSignup && !role.CanSignup(requested)) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	req := AuthRequest{
		Mode:     mode,
		Role:     requested,
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	result, err := s.auth.Authenticate(r.Context(), req)
	if err != nil {
		s.logger.Warn("auth backend unavailable", "mode", mode, "error", err)
		s.renderAuthForm(w, r, mode, requested, "Authentication is temporarily unavailable. Please try again.")
		return
	}
	if !result.OK {
		s.renderAuthForm(w, r, mode, requested, result.Reason)
		return
	}

	granted := result.Role
	if !granted.Valid() {
		granted = requested
	}
	token, sess, err := s.sessions.Issue(granted)
	if err != nil {
		s.logger.Error("issue session", "role", granted, "error", err)
		s.renderAuthForm(w, r, mode, requested, "Authentication is temporarily unavailable. Please try again.")
		return
	}

	// Session cookie: no Max-Age, so it dies with the tab.
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.recordFunnel(r, funnel.Event{
		Type:      funnel.EventLoginSucceeded,
		Role:      granted,
		SessionID: sess.ID,
		Meta:      map[string]any{"mode": string(mode)},
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderAuthForm re-renders the submitting form with a user-displayable
// reason. The chrome is built against the form's own route so it stays
// suppressed.
func (s *Server) renderAuthForm(w http.ResponseWriter, r *http.Request, mode AuthMode, reqRole role.Role, reason string) {
	meta := role.MetadataFor(reqRole)
	formPath := "/" + string(mode) + "/" + string(reqRole)

	shell := Shell{
		StyleClass:   "auth-gradient",
		ShowBackLink: true,
	}
	if mode == ModeLogin {
		shell.Title = meta.Title + " Login"
		shell.Subtitle = "Welcome back! Login to access your " + string(reqRole) + " dashboard."
		shell.BackLinkURL = "/login"
	} else {
		shell.Title = meta.Title + " Sign Up"
		shell.Subtitle = "Create your " + string(reqRole) + " account to get started"
		shell.BackLinkURL = "/signup"
	}

	var current role.Role
	if sess, ok := session.FromContext(r.Context()); ok {
		current = sess.Role
	}
	dark, _ := displayState(r)

	page := formPage{
		basePage: basePage{
			Chrome: nav.BuildChrome(formPath, current, &nav.Display{Dark: dark}),
			Shell:  shell,
			Footer: footerLinks,
		},
		Mode:  string(mode),
		Role:  string(reqRole),
		Error: reason,
	}
	s.render(w, http.StatusOK, "form", page)
}

// handleLogout clears the session cookie. The other legitimate session
// writer is handleAuthSubmit.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		s.recordFunnel(r, funnel.Event{
			Type:      funnel.EventLogout,
			Role:      sess.Role,
			SessionID: sess.ID,
		})
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
