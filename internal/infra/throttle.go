package infra

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedThrottle limits calls per key to one per window. Calls inside the
// window are dropped, not queued: Allow returns false and the caller is
// expected to skip the request entirely.
type KeyedThrottle struct {
	mu       sync.Mutex
	window   time.Duration
	limiters map[string]*rate.Limiter
}

// NewKeyedThrottle creates a throttle allowing one call per key per window.
func NewKeyedThrottle(window time.Duration) *KeyedThrottle {
	return &KeyedThrottle{
		window:   window,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a call for key may proceed now. The first call for a
// key always passes; subsequent calls pass only after the window has elapsed.
func (t *KeyedThrottle) Allow(key string) bool {
	t.mu.Lock()
	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(t.window), 1)
		t.limiters[key] = l
	}
	t.mu.Unlock()

	return l.Allow()
}
