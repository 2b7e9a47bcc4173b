// Package admin detects the hidden gesture that opens the admin page: a burst
// of clicks on the top bar.
package admin

import (
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultThreshold = 3
	DefaultWindow    = 2 * time.Second
)

// Notifier is told when a session completes the gesture.
type Notifier interface {
	AdminActivated(sessionID string)
}

// LogNotifier records activations in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) AdminActivated(sessionID string) {
	n.Logger.Info("admin mode activated", "session_id", sessionID)
}

type counter struct {
	count int
	last  time.Time
}

// Gate counts clicks per session. A click arriving more than window after the
// previous one starts a new burst. Reaching threshold fires the notifier, resets
// the count and unlocks admin mode for the session.
type Gate struct {
	threshold int
	window    time.Duration
	notifier  Notifier
	now       func() time.Time

	mu       sync.Mutex
	counters map[string]*counter
	active   map[string]struct{}
}

func NewGate(threshold int, window time.Duration, notifier Notifier) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{
		threshold: threshold,
		window:    window,
		notifier:  notifier,
		now:       time.Now,
		counters:  make(map[string]*counter),
		active:    make(map[string]struct{}),
	}
}

// Click registers one click for sessionID and reports whether it completed the
// gesture.
func (g *Gate) Click(sessionID string) bool {
	now := g.now()

	g.mu.Lock()
	c, ok := g.counters[sessionID]
	if !ok {
		c = &counter{}
		g.counters[sessionID] = c
	}
	if c.count > 0 && now.Sub(c.last) > g.window {
		c.count = 0
	}
	c.count++
	c.last = now

	fired := c.count >= g.threshold
	if fired {
		delete(g.counters, sessionID)
		g.active[sessionID] = struct{}{}
	}
	g.mu.Unlock()

	if fired && g.notifier != nil {
		g.notifier.AdminActivated(sessionID)
	}
	return fired
}

// IsActive reports whether sessionID has completed the gesture.
func (g *Gate) IsActive(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[sessionID]
	return ok
}

// Prune drops counters whose burst window has passed.
func (g *Gate) Prune() {
	now := g.now()
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, c := range g.counters {
		if now.Sub(c.last) > g.window {
			delete(g.counters, id)
		}
	}
}

func (g *Gate) pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.counters)
}
