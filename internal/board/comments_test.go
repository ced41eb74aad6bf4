package board

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newCommentFixture(t *testing.T) (*CommentService, *memStore, *fakeChannel, *fixedClock) {
	t.Helper()
	store := newMemStore()
	channel := newFakeChannel()
	clock := &fixedClock{t: time.Unix(1_700_000_000, 0)}
	limiter := testLimiter(clock)

	// Seed confession #1 with a live channel post.
	confessions := NewConfessionService(store, channel, testFilter(), limiter, "EAU Confession").
		WithClock(clock.Now)
	if _, err := confessions.Submit(context.Background(), 99, "seed confession"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewCommentService(store, channel, testFilter(), limiter, []string{"🗿", "👻", "🦊"}).
		WithClock(clock.Now).
		WithPicker(func(int) int { return 0 })
	return svc, store, channel, clock
}

func TestAddCommentStoresAndSyncsCount(t *testing.T) {
	svc, store, channel, _ := newCommentFixture(t)
	ctx := context.Background()

	if channel.counts[1] != 0 {
		t.Fatalf("initial count = %d", channel.counts[1])
	}

	if err := svc.Add(ctx, 5, 1, "nice!"); err != nil {
		t.Fatalf("add: %v", err)
	}

	c := store.comments[1]
	if c.ConfessionID != 1 || c.Text != "nice!" {
		t.Fatalf("stored comment: %+v", c)
	}
	if c.Avatar != "🗿" {
		t.Fatalf("avatar = %q", c.Avatar)
	}
	if channel.counts[1] != 1 {
		t.Fatalf("synced count = %d, want 1", channel.counts[1])
	}
}

func TestAddCommentCooldown(t *testing.T) {
	svc, _, _, clock := newCommentFixture(t)
	ctx := context.Background()

	if err := svc.Add(ctx, 5, 1, "first"); err != nil {
		t.Fatalf("first: %v", err)
	}
	clock.Advance(4 * time.Second)
	err := svc.Add(ctx, 5, 1, "too soon")
	rej, ok := AsRejection(err)
	if !ok || rej.Kind != RejectCooldown {
		t.Fatalf("expected cooldown rejection, got %v", err)
	}
	if rej.RetryAfter != 6 {
		t.Fatalf("retry after = %d, want 6", rej.RetryAfter)
	}

	clock.Advance(6 * time.Second)
	if err := svc.Add(ctx, 5, 1, "in time"); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestAddCommentValidation(t *testing.T) {
	svc, store, _, _ := newCommentFixture(t)
	ctx := context.Background()

	if err := svc.Add(ctx, 5, 1, "  "); err == nil {
		t.Fatal("empty comment accepted")
	} else if rej, ok := AsRejection(err); !ok || rej.Kind != RejectEmpty {
		t.Fatalf("expected empty rejection, got %v", err)
	}

	if err := svc.Add(ctx, 5, 1, "you badword2"); err == nil {
		t.Fatal("profane comment accepted")
	} else if rej, ok := AsRejection(err); !ok || rej.Kind != RejectProfanity {
		t.Fatalf("expected profanity rejection, got %v", err)
	}

	if err := svc.Add(ctx, 5, 404, "ghost thread"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if len(store.comments) != 0 {
		t.Fatalf("rejected comments stored: %d", len(store.comments))
	}

	// None of the rejections charged the cooldown.
	if err := svc.Add(ctx, 5, 1, "finally valid"); err != nil {
		t.Fatalf("valid comment after rejections: %v", err)
	}
}

func TestAddCommentSyncFailureIsSwallowed(t *testing.T) {
	svc, store, channel, _ := newCommentFixture(t)
	ctx := context.Background()
	channel.failUpdate = true

	if err := svc.Add(ctx, 5, 1, "still lands"); err != nil {
		t.Fatalf("add with failing sync: %v", err)
	}
	if len(store.comments) != 1 {
		t.Fatalf("comment not stored despite sync failure")
	}
	if channel.counts[1] != 0 {
		t.Fatalf("count updated despite failure: %d", channel.counts[1])
	}
}

func TestAddCommentToOrphanSkipsSync(t *testing.T) {
	store := newMemStore()
	channel := newFakeChannel()
	clock := &fixedClock{t: time.Unix(1_700_000_000, 0)}
	limiter := testLimiter(clock)

	// Orphan: stored confession, publish failed, no channel linkage.
	channel.failPublish = true
	confessions := NewConfessionService(store, channel, testFilter(), limiter, "EAU Confession").
		WithClock(clock.Now)
	if _, err := confessions.Submit(context.Background(), 99, "orphan"); !errors.Is(err, ErrPublish) {
		t.Fatalf("expected publish failure, got %v", err)
	}

	svc := NewCommentService(store, channel, testFilter(), limiter, []string{"🗿"}).
		WithClock(clock.Now)
	if err := svc.Add(context.Background(), 5, 1, "talking to the void"); err != nil {
		t.Fatalf("comment on orphan: %v", err)
	}
	if len(channel.counts) != 0 {
		t.Fatalf("sync attempted for orphan: %+v", channel.counts)
	}
}
