package ratelimit

import (
	"sync"
	"time"

	"catalog-service/core/clock"
)

// window tracks one client's attempts inside the current fixed window.
type window struct {
	start time.Time
	count int
}

// Limiter enforces a fixed-window quota per client id. The window for a
// client starts on its first request after an idle or expired period and
// resets entirely once WindowSeconds have elapsed since that start.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	max     int
	length  time.Duration
	clk     clock.Clock
}

// NewLimiter creates a Limiter from config using the given clock.
func NewLimiter(cfg Config, clk clock.Clock) *Limiter {
	max := cfg.MaxAttempts
	if max <= 0 {
		max = 60
	}
	secs := cfg.WindowSeconds
	if secs <= 0 {
		secs = 60
	}
	return &Limiter{
		clients: make(map[string]*window),
		max:     max,
		length:  time.Duration(secs) * time.Second,
		clk:     clk,
	}
}

// Allow records one attempt for clientID and reports whether it is within
// quota. When the quota is exceeded it returns the time remaining until the
// client's window resets. State for a client is created lazily and reset
// lazily on the first request after its window expires.
func (l *Limiter) Allow(clientID string) (bool, time.Duration) {
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[clientID]
	if !ok || now.Sub(w.start) >= l.length {
		l.clients[clientID] = &window{start: now, count: 1}
		l.evictExpired(now)
		return true, 0
	}

	if w.count >= l.max {
		return false, w.start.Add(l.length).Sub(now)
	}

	w.count++
	return true, 0
}

// evictExpired drops windows that closed with no further requests so idle
// clients do not accumulate. Called under the lock, piggybacking on window
// creation to stay off the hot path.
func (l *Limiter) evictExpired(now time.Time) {
	for id, w := range l.clients {
		if now.Sub(w.start) >= l.length {
			delete(l.clients, id)
		}
	}
}
