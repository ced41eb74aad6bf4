package cooldown

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(confess, comment time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	l := New(map[Action]time.Duration{
		ActionConfess: confess,
		ActionComment: comment,
	}).WithClock(clock.Now)
	return l, clock
}

func TestRemainingBeforeFirstAction(t *testing.T) {
	l, _ := newTestLimiter(30*time.Second, 10*time.Second)
	if d := l.Remaining(1, ActionConfess); d != 0 {
		t.Fatalf("expected no cooldown before first action, got %v", d)
	}
}

func TestCooldownWindow(t *testing.T) {
	l, clock := newTestLimiter(30*time.Second, 10*time.Second)

	l.Touch(1, ActionConfess)
	clock.Advance(5 * time.Second)

	d := l.Remaining(1, ActionConfess)
	if d != 25*time.Second {
		t.Fatalf("remaining = %v, want 25s", d)
	}
	if got := RetrySeconds(d); got != 25 {
		t.Fatalf("retry seconds = %d, want 25", got)
	}

	clock.Advance(25 * time.Second)
	if d := l.Remaining(1, ActionConfess); d != 0 {
		t.Fatalf("expected cooldown expired, got %v", d)
	}
}

func TestRetrySecondsRoundsUp(t *testing.T) {
	if got := RetrySeconds(24*time.Second + 300*time.Millisecond); got != 25 {
		t.Fatalf("retry seconds = %d, want 25", got)
	}
	if got := RetrySeconds(0); got != 0 {
		t.Fatalf("retry seconds = %d, want 0", got)
	}
}

func TestActionsAreIndependent(t *testing.T) {
	l, clock := newTestLimiter(30*time.Second, 10*time.Second)

	l.Touch(1, ActionConfess)
	if d := l.Remaining(1, ActionComment); d != 0 {
		t.Fatalf("comment cooldown affected by confession: %v", d)
	}

	l.Touch(1, ActionComment)
	clock.Advance(10 * time.Second)
	if d := l.Remaining(1, ActionComment); d != 0 {
		t.Fatalf("comment cooldown should have expired, got %v", d)
	}
	if d := l.Remaining(1, ActionConfess); d != 20*time.Second {
		t.Fatalf("confession remaining = %v, want 20s", d)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(30*time.Second, 10*time.Second)
	l.Touch(1, ActionConfess)
	if d := l.Remaining(2, ActionConfess); d != 0 {
		t.Fatalf("user 2 affected by user 1: %v", d)
	}
}

func TestUnknownActionNeverLimits(t *testing.T) {
	l, _ := newTestLimiter(30*time.Second, 10*time.Second)
	l.Touch(1, Action("other"))
	if d := l.Remaining(1, Action("other")); d != 0 {
		t.Fatalf("unknown action limited: %v", d)
	}
}
