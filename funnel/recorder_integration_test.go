package funnel

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"sellmate/db"
	"sellmate/role"
	"sellmate/test/infra"
)

// TestPGRecorder_Integration runs against a throwaway Postgres container (or
// FUNNEL_TEST_PG_DSN). It is skipped when neither Docker nor a DSN is
// available.
func TestPGRecorder_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	if os.Getenv("FUNNEL_TEST_PG_DSN") == "" && os.Getenv("FUNNEL_TEST_USE_DOCKER") == "" {
		t.Skip("set FUNNEL_TEST_PG_DSN or FUNNEL_TEST_USE_DOCKER=1 to run the funnel integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgc, dsn, err := infra.StartPostgres16(ctx, "")
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer func() { _ = pgc.Terminate(context.Background()) }()

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rec := NewPGRecorder(pool)
	ev := Event{
		Type:      EventSignupCommitted,
		Role:      role.Seller,
		SessionID: "it-session",
		Path:      "/signup",
		Meta:      map[string]any{"gate_id": "it-gate"},
	}
	if err := rec.Record(ctx, ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	var (
		gotRole    string
		gotSession string
		gotPayload []byte
	)
	const q = `SELECT role, session_id, payload FROM funnel_events WHERE type = $1`
	if err := pool.QueryRow(ctx, q, EventSignupCommitted).Scan(&gotRole, &gotSession, &gotPayload); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if gotRole != string(role.Seller) {
		t.Fatalf("expected role seller got %q", gotRole)
	}
	if gotSession != "it-session" {
		t.Fatalf("expected session id it-session got %q", gotSession)
	}
	var payload map[string]any
	if err := json.Unmarshal(gotPayload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["gate_id"] != "it-gate" {
		t.Fatalf("expected gate_id in payload, got %v", payload)
	}
}

func TestRecordRejectsMissingType(t *testing.T) {
	rec := NewPGRecorder(nil)
	if err := rec.Record(context.Background(), Event{}); err == nil {
		t.Fatal("expected error for missing event type")
	}
}

func TestNopRecorder(t *testing.T) {
	if err := (Nop{}).Record(context.Background(), Event{Type: EventLogout}); err != nil {
		t.Fatalf("nop recorder must never fail: %v", err)
	}
}
