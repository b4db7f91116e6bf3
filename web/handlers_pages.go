package web

import (
	"net/http"

	"sellmate/funnel"
	"sellmate/role"
	"sellmate/session"
)

type homePage struct {
	basePage
	LoggedIn  bool
	RoleTitle string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page := homePage{
		basePage: s.basePageFor(r, Shell{
			Title:    "SellMate",
			Subtitle: "Secure marketplace transactions with trusted middlemen",
		}),
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		page.LoggedIn = true
		page.RoleTitle = role.MetadataFor(sess.Role).Title
	}
	s.render(w, http.StatusOK, "home", page)
}

type profilePage struct {
	basePage
	RoleTitle string
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	page := profilePage{
		basePage: s.basePageFor(r, Shell{
			Title: "Profile",
		}),
		RoleTitle: role.MetadataFor(sess.Role).Title,
	}
	s.render(w, http.StatusOK, "profile", page)
}

// handleDisplayToggle flips the display-mode cookie. The preference is
// host-shell state: it works the same whether or not anyone is logged in.
func (s *Server) handleDisplayToggle(w http.ResponseWriter, r *http.Request) {
	dark, _ := displayState(r)
	value := "dark"
	if dark {
		value = "light"
	}
	http.SetCookie(w, &http.Cookie{
		Name:  displayCookie,
		Value: value,
		Path:  "/",
	})

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// recordFunnel emits a funnel event without letting recording failures
// affect the response.
func (s *Server) recordFunnel(r *http.Request, ev funnel.Event) {
	if ev.SessionID == "" {
		if sess, ok := session.FromContext(r.Context()); ok {
			ev.SessionID = sess.ID
		}
	}
	if ev.Path == "" {
		ev.Path = r.URL.Path
	}
	if err := s.funnel.Record(r.Context(), ev); err != nil {
		s.logger.Warn("funnel record failed", "type", ev.Type, "error", err)
	}
}
