package analytics

import (
	"sync"
	"time"
)

// rateLimiter caps collect requests per key with a fixed window counter.
// A beacon endpoint does not need sliding-window precision; a counter that
// resets every window is enough to keep one client from flooding the log.
type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int
	window  time.Duration
}

type bucket struct {
	count int
	reset time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		buckets: make(map[string]*bucket),
		max:     max,
		window:  window,
	}
	go rl.evictLoop()
	return rl
}

// allow records a request for key and reports whether it fits the budget.
func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.buckets[key]
	if b == nil || now.After(b.reset) {
		rl.buckets[key] = &bucket{count: 1, reset: now.Add(rl.window)}
		return true
	}
	b.count++
	return b.count <= rl.max
}

// evictLoop drops expired buckets so idle keys do not accumulate.
func (rl *rateLimiter) evictLoop() {
	for range time.Tick(rl.window) {
		now := time.Now()
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if now.After(b.reset) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
