// Package web serves the Sellmate front-end gateway: the auth routes with
// their role guards, the signup terms gate, the session cookie, and the
// navigation chrome. Page rendering is deliberately thin; the decisions live
// in the nav, signup and session packages.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sellmate/funnel"
	"sellmate/session"
	"sellmate/signup"
)

// gracefulShutdownTimeout bounds how long in-flight requests may run during
// shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the gateway server.
type Deps struct {
	Addr     string
	Logger   *slog.Logger
	Sessions *session.Manager
	Gates    *signup.Registry
	Funnel   funnel.Recorder
	Auth     Authenticator
}

// Server is the gateway HTTP server.
type Server struct {
	addr     string
	logger   *slog.Logger
	sessions *session.Manager
	gates    *signup.Registry
	funnel   funnel.Recorder
	auth     Authenticator
	tmpl     *templates
	server   *http.Server
}

// New builds a Server from deps. It is not listening until Start.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("web: logger is required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("web: session manager is required")
	}
	if deps.Gates == nil {
		return nil, fmt.Errorf("web: gate registry is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("web: authenticator is required")
	}
	if deps.Funnel == nil {
		deps.Funnel = funnel.Nop{}
	}
	if deps.Addr == "" {
		deps.Addr = ":8080"
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	s := &Server{
		addr:     deps.Addr,
		logger:   deps.Logger,
		sessions: deps.Sessions,
		gates:    deps.Gates,
		funnel:   deps.Funnel,
		auth:     deps.Auth,
		tmpl:     tmpl,
	}
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, primarily for httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return <-errCh
}
