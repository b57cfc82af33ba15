package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window hit counter keyed by caller identity.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	window  time.Duration
	maxHits int
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		hits:    make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
	}
}

// Allow records one hit for key and reports whether it stays within the
// window budget.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.window)

	// Drop hits that have aged out of the window.
	recent := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(windowStart) {
			recent = append(recent, hit)
		}
	}

	if len(recent) >= l.maxHits {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}
