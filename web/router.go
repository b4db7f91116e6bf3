package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.sessionMiddleware)
	r.Use(s.abandonMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleHome)
	r.Get("/profile", s.handleProfile)
	r.Post("/display", s.handleDisplayToggle)

	r.Get("/login", s.handleLogin)
	r.Get("/login/{role}", s.handleLogin)

	r.Get("/signup", s.handleSignup)
	r.Get("/signup/{role}", s.handleSignup)
	r.Post("/signup/select", s.handleSignupSelect)
	r.Post("/signup/terms", s.handleSignupTerms)
	r.Post("/signup/dismiss", s.handleSignupDismiss)
	r.Post("/signup/confirm", s.handleSignupConfirm)

	r.Post("/auth/submit", s.handleAuthSubmit)
	r.Post("/logout", s.handleLogout)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
