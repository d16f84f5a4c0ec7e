package server

import (
	"strings"
	"sync"
	"time"
)

// rateLimiter bounds webhook delivery bursts per shop domain with a fixed
// window. It absorbs delivery floods, it is not a fairness mechanism.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	windows   map[string]*shopWindow
	lastSweep time.Time
}

type shopWindow struct {
	openedAt time.Time
	count    int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &rateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*shopWindow),
	}
}

// Allow reports whether one more delivery from shopDomain fits in the
// current window. The key is normalized the same way the shop gate
// normalizes it, so header casing cannot buy extra quota.
func (r *rateLimiter) Allow(shopDomain string) bool {
	key := strings.ToLower(strings.TrimSpace(shopDomain))
	if key == "" {
		return false
	}

	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep(now)

	w := r.windows[key]
	if w == nil || now.Sub(w.openedAt) >= r.window {
		w = &shopWindow{openedAt: now}
		r.windows[key] = w
	}

	if w.count >= r.limit {
		return false
	}

	w.count++
	return true
}

// sweep evicts expired windows at most once per window, keeping the map
// bounded even when senders spray spoofed shop domains.
func (r *rateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.window {
		return
	}
	for key, w := range r.windows {
		if now.Sub(w.openedAt) >= r.window {
			delete(r.windows, key)
		}
	}
	r.lastSweep = now
}
