package signup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultGateTTL bounds how long an untouched gate survives. A pending
// selection must never outlive the signup attempt it belongs to, so stale
// gates are swept rather than kept warm.
const defaultGateTTL = 30 * time.Minute

type entry struct {
	gate     *Gate
	lastSeen time.Time
}

// Registry hands out one Gate per visitor, keyed by an opaque id carried in
// a tab-scoped cookie. Gates are created on first use and swept once idle
// past the TTL.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewRegistry builds a Registry. A non-positive ttl uses the default.
func NewRegistry(ttl time.Duration, logger *slog.Logger) *Registry {
	if ttl <= 0 {
		ttl = defaultGateTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Acquire returns the gate for id, creating one under a fresh id when id is
// empty or unknown. The returned id is what the caller should set back into
// the gate cookie.
func (r *Registry) Acquire(id string) (string, *Gate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if e, ok := r.entries[id]; ok {
			e.lastSeen = r.now()
			return id, e.gate
		}
	}

	id = uuid.NewString()
	e := &entry{gate: NewGate(r.logger), lastSeen: r.now()}
	r.entries[id] = e
	return id, e.gate
}

// Abandon discards the gate for id, if present. Used when a visitor leaves
// the signup flow so no pending selection survives the transition.
func (r *Registry) Abandon(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		e.gate.Abandon()
		delete(r.entries, id)
	}
}

// Sweep drops gates idle past the TTL and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done. Interval defaults to a quarter
// of the TTL.
func (r *Registry) Run(ctx context.Context) {
	interval := r.ttl / 4
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("swept stale signup gates", "count", n)
			}
		}
	}
}

// Len reports how many live gates exist.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
