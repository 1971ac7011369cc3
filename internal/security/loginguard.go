package security

import (
	"fmt"
	"sync"
	"time"

	"ats/internal/common"
)

const (
	DefaultMaxLoginAttempts = 5
	DefaultLoginLockout     = 15 * time.Minute
)

// LoginGuard tracks failed login attempts per identity and enforces a
// temporary lockout. State is process-local and reset on restart. Expired
// lockouts are cleared lazily on the next check; there is no background sweep.
type LoginGuard struct {
	mu          sync.Mutex
	entries     map[string]*guardEntry
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

type guardEntry struct {
	failures    int
	lockedUntil time.Time
}

func NewLoginGuard(maxAttempts int, lockout time.Duration) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxLoginAttempts
	}
	if lockout <= 0 {
		lockout = DefaultLoginLockout
	}
	return &LoginGuard{
		entries:     make(map[string]*guardEntry),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// CheckNotLocked fails with an account_locked error while a lockout is in
// effect, reporting the remaining time rounded up to whole minutes. An expired
// lockout clears both the lock and the attempt counter before proceeding.
func (g *LoginGuard) CheckNotLocked(identity string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[identity]
	if !ok || entry.lockedUntil.IsZero() {
		return nil
	}
	now := g.now()
	if now.Before(entry.lockedUntil) {
		remaining := entry.lockedUntil.Sub(now)
		minutes := int64((remaining + time.Minute - 1) / time.Minute)
		return common.NewError(common.CodeAccountLocked,
			fmt.Sprintf("account temporarily locked, try again in %d minute(s)", minutes), nil)
	}
	delete(g.entries, identity)
	return nil
}

// RecordFailure counts a failed attempt. Reaching the threshold starts a
// lockout window and resets the counter, so attempt counting starts from zero
// once the window expires.
func (g *LoginGuard) RecordFailure(identity string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[identity]
	if !ok {
		entry = &guardEntry{}
		g.entries[identity] = entry
	}
	entry.failures++
	if entry.failures >= g.maxAttempts {
		entry.lockedUntil = g.now().Add(g.lockout)
		entry.failures = 0
	}
}

// RecordSuccess clears all guard state for the identity.
func (g *LoginGuard) RecordSuccess(identity string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, identity)
}
