package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reliefdesk/internal/clock"
	"reliefdesk/internal/donation"
)

// Factory builds the donation manager for a newly seen session.
type Factory func(sessionID string) (*donation.Manager, error)

type entry struct {
	manager  *donation.Manager
	lastSeen time.Time
}

// Registry keeps one donation manager per session and forgets sessions that
// stay idle longer than the configured TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	clock    clock.Clock
	factory  Factory
	logger   zerolog.Logger
}

// NewRegistry creates a registry. A non-positive ttl keeps sessions forever.
func NewRegistry(factory Factory, ttl time.Duration, clk clock.Clock, logger zerolog.Logger) (*Registry, error) {
	if factory == nil {
		return nil, errors.New("session: factory is required")
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		clock:    clk,
		factory:  factory,
		logger:   logger,
	}, nil
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the manager for id, creating it when the session is new or
// has expired.
func (r *Registry) Get(id string) (*donation.Manager, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("session: id is required")
	}
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok && !r.expired(e, now) {
		e.lastSeen = now
		return e.manager, nil
	}
	m, err := r.factory(id)
	if err != nil {
		return nil, err
	}
	r.sessions[id] = &entry{manager: m, lastSeen: now}
	r.logger.Debug().Str("session_id", id).Msg("session started")
	return m, nil
}

// Len reports the number of tracked sessions, expired ones included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug().Int("removed", removed).Int("remaining", len(r.sessions)).Msg("idle sessions swept")
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	if every <= 0 || r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl
}
