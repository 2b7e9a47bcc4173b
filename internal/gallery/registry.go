package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Persistence is the durable home of session state.
type Persistence interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, st State) error
}

// Registry keeps the live sessions in memory, loading them from Persistence on
// first use and writing them back when they go idle.
type Registry struct {
	persist Persistence
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a Registry. A nil Persistence keeps sessions in memory only.
func NewRegistry(persist Persistence, ttl time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		persist:  persist,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session for id, loading it if necessary. Loading happens
// outside the registry lock; when two loads of the same id race, the first one
// inserted wins.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}

	if s, ok := r.lookup(id); ok {
		return s, nil
	}

	s := NewSession(id)
	if r.persist != nil {
		st, err := r.persist.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		s = restoreSession(id, st)
		r.logger.Debug("session loaded", "session_id", id, "ratings", len(st.Ratings), "comments", len(st.Comments))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		existing.touch(r.now())
		return existing, nil
	}
	s.touch(r.now())
	r.sessions[id] = s
	return s, nil
}

func (r *Registry) lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Save writes the current state of s to Persistence.
func (r *Registry) Save(ctx context.Context, s *Session) error {
	if r.persist == nil {
		return nil
	}
	if err := r.persist.Save(ctx, s.ID(), s.Snapshot().State()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Sweep saves and evicts every session idle for longer than the TTL and returns
// how many were evicted. A session whose save fails stays in memory.
func (r *Registry) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var idle []*Session
	for _, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, s)
		}
	}
	r.mu.Unlock()

	evicted := 0
	for _, s := range idle {
		if err := r.Save(ctx, s); err != nil {
			r.logger.Error("failed to save idle session", "session_id", s.ID(), "error", err)
			continue
		}
		r.mu.Lock()
		if cur, ok := r.sessions[s.ID()]; ok && cur == s && s.idleSince().Before(cutoff) {
			delete(r.sessions, s.ID())
			evicted++
		}
		r.mu.Unlock()
	}
	if evicted > 0 {
		r.logger.Info("idle sessions evicted", "count", evicted)
	}
	return evicted
}

// Run sweeps every interval until ctx is cancelled, then saves whatever is
// still live.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Flush saves every live session.
func (r *Registry) Flush(ctx context.Context) {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	for _, s := range live {
		if err := r.Save(ctx, s); err != nil {
			r.logger.Error("failed to flush session", "session_id", s.ID(), "error", err)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
