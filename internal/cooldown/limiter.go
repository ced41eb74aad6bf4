// Package cooldown tracks the minimum interval between accepted actions of
// the same kind by the same user. Unlike the transport flood limiter, the
// caller decides when a timestamp is charged: validation failures never
// consume the cooldown.
package cooldown

import (
	"math"
	"sync"
	"time"
)

// Action identifies a rate-limited action kind.
type Action string

const (
	// ActionConfess covers confession submissions.
	ActionConfess Action = "confess"
	// ActionComment covers comment submissions.
	ActionComment Action = "comment"
)

type key struct {
	userID int64
	action Action
}

// Limiter keeps the last charged timestamp per (user, action).
// State is process-local and not durable across restarts.
type Limiter struct {
	mu        sync.Mutex
	intervals map[Action]time.Duration
	last      map[key]time.Time
	now       func() time.Time
}

// New builds a Limiter with the given per-action intervals.
func New(intervals map[Action]time.Duration) *Limiter {
	cp := make(map[Action]time.Duration, len(intervals))
	for a, d := range intervals {
		cp[a] = d
	}
	return &Limiter{
		intervals: cp,
		last:      make(map[key]time.Time),
		now:       time.Now,
	}
}

// WithClock overrides the time source, for deterministic tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Remaining reports how long the user must still wait before the action is
// allowed. Zero means allowed. It does not charge the cooldown.
func (l *Limiter) Remaining(userID int64, action Action) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	interval, ok := l.intervals[action]
	if !ok || interval <= 0 {
		return 0
	}
	last, ok := l.last[key{userID, action}]
	if !ok {
		return 0
	}
	elapsed := l.now().Sub(last)
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

// RetrySeconds converts a Remaining value into whole seconds for user-facing
// replies, rounding up so the user never retries a second too early.
func RetrySeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Touch charges the cooldown for the action. Callers invoke it only after
// the downstream operation succeeded.
func (l *Limiter) Touch(userID int64, action Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last[key{userID, action}] = l.now()
}
