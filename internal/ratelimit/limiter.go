// Package ratelimit implements the fixed-window admission counter guarding
// the authentication endpoints. Counters live in process memory only; each
// instance enforces its own limit.
package ratelimit

import (
	"sync"
	"time"
)

type counter struct {
	count       int
	windowStart time.Time
}

// Limiter tracks request counts per client key over a fixed window.
// A counter resets to 1 the first time it is hit after its window has
// elapsed, which also garbage-collects the previous window implicitly.
type Limiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	counters map[string]*counter

	now func() time.Time
}

func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:      max,
		window:   window,
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it is admitted.
// When denied, retryAfter is how long the caller should wait before the
// window rolls over.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	c, exists := l.counters[key]
	if !exists || now.Sub(c.windowStart) >= l.window {
		l.counters[key] = &counter{count: 1, windowStart: now}
		return true, 0
	}

	c.count++
	if c.count > l.max {
		return false, c.windowStart.Add(l.window).Sub(now)
	}
	return true, 0
}
