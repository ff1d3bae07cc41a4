package inkpress

import (
	"fmt"
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	attemptWindow    = 15 * time.Minute
	lockoutDuration  = 30 * time.Minute
)

// clientAttempt tracks login attempts for one client fingerprint.
type clientAttempt struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time // zero when not locked
}

// loginLimiter rate-limits login attempts per client fingerprint with a
// sliding window and a lockout once the window's budget is spent.
type loginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*clientAttempt
	max      int
	window   time.Duration
	lockout  time.Duration
	now      func() time.Time // injectable for tests
}

func newLoginLimiter(max int, window, lockout time.Duration) *loginLimiter {
	l := &loginLimiter{
		attempts: make(map[string]*clientAttempt),
		max:      max,
		window:   window,
		lockout:  lockout,
		now:      time.Now,
	}
	go l.cleanup()
	return l
}

// Check reports whether fingerprint may attempt a login right now, with a
// human-readable message when it may not. Allowed calls still increment the
// counter: no attempt is free, by policy, even the one that ends up
// succeeding.
func (l *loginLimiter) Check(fingerprint string) (bool, string) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.attempts[fingerprint]

	if rec != nil && !rec.lockedUntil.IsZero() && now.Before(rec.lockedUntil) {
		minutesLeft := int(rec.lockedUntil.Sub(now).Minutes()) + 1
		return false, fmt.Sprintf("Account temporarily locked. Try again in %d minute(s).", minutesLeft)
	}

	// No record, or the window (or an elapsed lock) is behind us: start a
	// fresh tracking period.
	if rec == nil || now.Sub(rec.firstAttempt) > l.window {
		l.attempts[fingerprint] = &clientAttempt{count: 1, firstAttempt: now}
		return true, ""
	}

	if rec.count >= l.max {
		rec.lockedUntil = now.Add(l.lockout)
		return false, fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", int(l.lockout.Minutes()))
	}

	rec.count++
	return true, ""
}

// Reset deletes the record for fingerprint. Called on successful login.
func (l *loginLimiter) Reset(fingerprint string) {
	l.mu.Lock()
	delete(l.attempts, fingerprint)
	l.mu.Unlock()
}

// cleanup periodically drops records whose window and lock have both
// elapsed, so fingerprints that never log in do not accumulate forever.
func (l *loginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		now := l.now()
		l.mu.Lock()
		for fp, rec := range l.attempts {
			windowOver := now.Sub(rec.firstAttempt) > l.window
			lockOver := rec.lockedUntil.IsZero() || now.After(rec.lockedUntil)
			if windowOver && lockOver {
				delete(l.attempts, fp)
			}
		}
		l.mu.Unlock()
	}
}
