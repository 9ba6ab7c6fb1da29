// Package ratelimit implements a login lockout: an identifier that fails
// authentication too many times in a row is locked out for a fixed period.
package ratelimit

import (
	"sync"
	"time"
)

type lockoutEntry struct {
	failures    int
	lockedUntil time.Time
}

// LoginLimiter tracks consecutive authentication failures per identifier.
// A successful login clears the counter; crossing the threshold locks the
// identifier until the lockout period elapses.
type LoginLimiter struct {
	maxFailures int
	lockFor     time.Duration
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*lockoutEntry
}

func NewLoginLimiter(maxFailures int, lockFor time.Duration) *LoginLimiter {
	return &LoginLimiter{
		maxFailures: maxFailures,
		lockFor:     lockFor,
		now:         time.Now,
		entries:     make(map[string]*lockoutEntry),
	}
}

// Locked reports whether the identifier is currently locked out. An expired
// lock is cleared on the way through, so the next attempt starts fresh.
func (l *LoginLimiter) Locked(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok {
		return false
	}
	if entry.lockedUntil.IsZero() {
		return false
	}
	if l.now().After(entry.lockedUntil) {
		delete(l.entries, identifier)
		return false
	}
	return true
}

// RecordFailure counts one failed attempt and starts the lockout once the
// threshold is reached.
func (l *LoginLimiter) RecordFailure(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok {
		entry = &lockoutEntry{}
		l.entries[identifier] = entry
	}
	entry.failures++
	if entry.failures >= l.maxFailures {
		entry.lockedUntil = l.now().Add(l.lockFor)
	}
}

// Clear wipes the failure history for the identifier.
func (l *LoginLimiter) Clear(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}
