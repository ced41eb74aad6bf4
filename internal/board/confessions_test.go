package board

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newConfessionFixture() (*ConfessionService, *memStore, *fakeChannel, *fixedClock) {
	store := newMemStore()
	channel := newFakeChannel()
	clock := &fixedClock{t: time.Unix(1_700_000_000, 0)}
	svc := NewConfessionService(store, channel, testFilter(), testLimiter(clock), "EAU Confession").
		WithClock(clock.Now)
	return svc, store, channel, clock
}

func TestSubmitPublishesWithAssignedID(t *testing.T) {
	svc, store, channel, _ := newConfessionFixture()

	id, err := svc.Submit(context.Background(), 1, "hello world")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	body := channel.posts[1]
	if !strings.Contains(body, "EAU Confession #1") {
		t.Fatalf("post missing title: %q", body)
	}
	if !strings.Contains(body, "hello world") {
		t.Fatalf("post missing text: %q", body)
	}

	conf, err := store.GetConfession(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !conf.ChannelMessageID.Valid || conf.ChannelMessageID.Int64 != 1 {
		t.Fatalf("channel message id not linked: %+v", conf.ChannelMessageID)
	}
	if conf.AuthorID != 1 {
		t.Fatalf("author id = %d", conf.AuthorID)
	}
}

func TestSubmitEscapesHTML(t *testing.T) {
	svc, _, channel, _ := newConfessionFixture()

	if _, err := svc.Submit(context.Background(), 1, "I <3 here & there"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	body := channel.posts[1]
	if !strings.Contains(body, "I &lt;3 here &amp; there") {
		t.Fatalf("text not escaped: %q", body)
	}
}

func TestSubmitCooldown(t *testing.T) {
	svc, _, _, clock := newConfessionFixture()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, "first"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	clock.Advance(5 * time.Second)
	_, err := svc.Submit(ctx, 1, "second")
	rej, ok := AsRejection(err)
	if !ok || rej.Kind != RejectCooldown {
		t.Fatalf("expected cooldown rejection, got %v", err)
	}
	if rej.RetryAfter != 25 {
		t.Fatalf("retry after = %d, want 25", rej.RetryAfter)
	}

	// Another user is unaffected.
	if _, err := svc.Submit(ctx, 2, "other user"); err != nil {
		t.Fatalf("other user: %v", err)
	}

	clock.Advance(25 * time.Second)
	if _, err := svc.Submit(ctx, 1, "third"); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestSubmitValidationRejections(t *testing.T) {
	svc, store, _, _ := newConfessionFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		text string
		kind RejectKind
	}{
		{"empty", "", RejectEmpty},
		{"whitespace", "   \n\t ", RejectEmpty},
		{"profanity", "such a badword1 day", RejectProfanity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, 1, tc.text)
			rej, ok := AsRejection(err)
			if !ok || rej.Kind != tc.kind {
				t.Fatalf("expected %s rejection, got %v", tc.kind, err)
			}
		})
	}

	if len(store.confessions) != 0 {
		t.Fatalf("rejected submissions were stored: %d", len(store.confessions))
	}

	// Rejections never consume the cooldown.
	if _, err := svc.Submit(ctx, 1, "valid after rejections"); err != nil {
		t.Fatalf("valid submit after rejections: %v", err)
	}
}

func TestSubmitIDsStrictlyIncrease(t *testing.T) {
	svc, _, _, clock := newConfessionFixture()
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		id, err := svc.Submit(ctx, int64(100+i), "confession")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if id != prev+1 {
			t.Fatalf("id = %d after %d, want %d", id, prev, prev+1)
		}
		prev = id
		clock.Advance(time.Minute)
	}
}

func TestSubmitPublishFailureOrphans(t *testing.T) {
	svc, store, channel, _ := newConfessionFixture()
	ctx := context.Background()
	channel.failPublish = true

	id, err := svc.Submit(ctx, 1, "doomed")
	if !errors.Is(err, ErrPublish) {
		t.Fatalf("expected ErrPublish, got %v", err)
	}
	if id != 1 {
		t.Fatalf("orphan id = %d, want 1", id)
	}

	conf, getErr := store.GetConfession(ctx, id)
	if getErr != nil {
		t.Fatalf("orphan not stored: %v", getErr)
	}
	if conf.ChannelMessageID.Valid {
		t.Fatalf("orphan has channel linkage: %+v", conf.ChannelMessageID)
	}

	// A failed publish does not charge the cooldown.
	channel.failPublish = false
	if _, err := svc.Submit(ctx, 1, "retried by hand"); err != nil {
		t.Fatalf("resubmit after publish failure: %v", err)
	}
}
