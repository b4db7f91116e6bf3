package main

import (
	"context"
	"testing"
)

func TestRunFailsWithoutSessionSecret(t *testing.T) {
	t.Setenv("SELLMATE_SESSION_SECRET", "")
	t.Setenv("SELLMATE_CONFIG", "")

	if err := run(context.Background()); err == nil {
		t.Fatal("expected run to fail without a session secret")
	}
}

func TestRunStopsCleanlyOnCancelledContext(t *testing.T) {
	t.Setenv("SELLMATE_SESSION_SECRET", "test-secret")
	t.Setenv("SELLMATE_SERVER_ADDRESS", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
