package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"sellmate/session"
)

// gateCookie carries the visitor's terms-gate id. Path "/" so leaving the
// signup flow is visible to the abandonment middleware.
const gateCookie = "sellmate_gate"

// displayCookie persists the display-mode preference, independent of any
// session.
const displayCookie = "sellmate_display"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestIDMiddleware tags every request, reusing a client-provided
// X-Request-ID when present.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs method, path, status and duration per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// recoveryMiddleware turns handler panics into a 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered in handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// sessionMiddleware decodes the session cookie into the request context. A
// missing or invalid cookie means an anonymous visitor, never an error.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err == nil && cookie.Value != "" {
			if sess, err := s.sessions.Parse(cookie.Value); err == nil {
				r = r.WithContext(session.NewContext(r.Context(), sess))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// abandonMiddleware discards a pending signup selection once the visitor
// navigates away from the signup flow. The gate cookie is expired alongside
// so no orphaned pending state survives the transition.
func (s *Server) abandonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/signup") {
			if cookie, err := r.Cookie(gateCookie); err == nil && cookie.Value != "" {
				s.gates.Abandon(cookie.Value)
				http.SetCookie(w, &http.Cookie{
					Name:     gateCookie,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// displayState reads the display-mode cookie. The zero value is light mode.
func displayState(r *http.Request) (dark bool, present bool) {
	cookie, err := r.Cookie(displayCookie)
	if err != nil {
		return false, false
	}
	return cookie.Value == "dark", true
}
