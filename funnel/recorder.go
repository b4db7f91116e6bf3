// Package funnel records signup and login funnel events. Events are
// append-only and carry no credentials and no session tokens; recording is
// best-effort and never blocks a navigation.
package funnel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sellmate/role"
)

// Event types emitted by the gateway.
const (
	EventRoleSelected    = "role_selected"
	EventTermsAccepted   = "terms_accepted"
	EventSignupCommitted = "signup_committed"
	EventLoginSucceeded  = "login_succeeded"
	EventLogout          = "logout"
)

// Event is one funnel observation.
type Event struct {
	Type       string
	Role       role.Role
	SessionID  string
	Path       string
	OccurredAt time.Time
	Meta       map[string]any
}

// Recorder appends funnel events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// PGRecorder appends events to the funnel_events table.
type PGRecorder struct {
	pool *pgxpool.Pool
}

// NewPGRecorder wraps pool as a Recorder.
func NewPGRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

// Schema creates the funnel_events table when absent. Kept next to the
// writes so the integration test and a fresh deployment share one source.
const Schema = `
CREATE TABLE IF NOT EXISTS funnel_events (
    id         BIGSERIAL PRIMARY KEY,
    type       TEXT        NOT NULL,
    role       TEXT        NOT NULL DEFAULT '',
    session_id TEXT        NOT NULL DEFAULT '',
    path       TEXT        NOT NULL DEFAULT '',
    payload    JSONB       NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

// Migrate applies Schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("funnel: migrate: %w", err)
	}
	return nil
}

// Record appends ev.
func (r *PGRecorder) Record(ctx context.Context, ev Event) error {
	if ev.Type == "" {
		return fmt.Errorf("funnel: missing event type")
	}

	payload := ev.Meta
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("funnel: marshal payload: %w", err)
	}

	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	const q = `
INSERT INTO funnel_events (type, role, session_id, path, payload, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6)
`
	if _, err := r.pool.Exec(ctx, q, ev.Type, string(ev.Role), ev.SessionID, ev.Path, body, occurred); err != nil {
		return fmt.Errorf("funnel: insert event: %w", err)
	}
	return nil
}

// Nop discards every event. Used when no funnel database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

// Async wraps a Recorder so handler paths never wait on the database. Errors
// are logged and dropped; losing a funnel event is preferable to stalling a
// navigation.
type Async struct {
	inner  Recorder
	logger *slog.Logger
}

// NewAsync wraps inner. A nil logger falls back to slog.Default.
func NewAsync(inner Recorder, logger *slog.Logger) *Async {
	if logger == nil {
		logger = slog.Default()
	}
	return &Async{inner: inner, logger: logger}
}

// Record hands the event to the inner recorder on a fresh goroutine with its
// own timeout, detached from the request context.
func (a *Async) Record(_ context.Context, ev Event) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.inner.Record(ctx, ev); err != nil {
			a.logger.Warn("funnel event dropped", "type", ev.Type, "error", err)
		}
	}()
	return nil
}
