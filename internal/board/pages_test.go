package board

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newPageFixture(t *testing.T, comments int) (*PageRenderer, *memStore) {
	t.Helper()
	store := newMemStore()
	ctx := context.Background()

	if _, err := store.CreateConfession(ctx, "the confession <text>", 99, 1_700_000_000); err != nil {
		t.Fatalf("seed confession: %v", err)
	}
	for i := 0; i < comments; i++ {
		if _, err := store.CreateComment(ctx, 1, fmt.Sprintf("comment %d", i+1), "🗿", 1_700_000_000+int64(i)); err != nil {
			t.Fatalf("seed comment %d: %v", i, err)
		}
	}
	return NewPageRenderer(store, "EAU Confession", 4), store
}

func TestRenderFirstPageNewestFirst(t *testing.T) {
	r, _ := newPageFixture(t, 6)

	p, err := r.Render(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if p.Number != 1 || p.Total != 2 {
		t.Fatalf("page %d/%d, want 1/2", p.Number, p.Total)
	}
	if !strings.Contains(p.Body, "EAU Confession #1") {
		t.Fatalf("missing title: %q", p.Body)
	}
	if !strings.Contains(p.Body, "the confession &lt;text&gt;") {
		t.Fatalf("confession text not escaped: %q", p.Body)
	}
	if !strings.Contains(p.Body, "page 1/2") {
		t.Fatalf("missing page header: %q", p.Body)
	}
	// Newest first: comment 6 on page 1, comment 1 not.
	if !strings.Contains(p.Body, "comment 6") {
		t.Fatalf("newest comment missing: %q", p.Body)
	}
	if strings.Contains(p.Body, "comment 1\n") {
		t.Fatalf("oldest comment leaked onto page 1: %q", p.Body)
	}
	if !p.HasNext() || p.HasPrev() {
		t.Fatalf("nav: prev=%v next=%v", p.HasPrev(), p.HasNext())
	}
}

func TestRenderClampsPageNumber(t *testing.T) {
	r, _ := newPageFixture(t, 4)
	ctx := context.Background()

	for _, requested := range []int{0, -3, 3, 1_000_000} {
		p, err := r.Render(ctx, 1, requested)
		if err != nil {
			t.Fatalf("render page %d: %v", requested, err)
		}
		if p.Number != 1 || p.Total != 1 {
			t.Fatalf("requested %d: page %d/%d, want 1/1", requested, p.Number, p.Total)
		}
		if p.HasPrev() || p.HasNext() {
			t.Fatalf("single page must have no nav controls")
		}
	}
}

func TestRenderEmptyThread(t *testing.T) {
	r, _ := newPageFixture(t, 0)
	p, err := r.Render(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if p.Total != 1 || p.Number != 1 {
		t.Fatalf("page %d/%d, want 1/1", p.Number, p.Total)
	}
	if !strings.Contains(p.Body, "page 1/1") {
		t.Fatalf("missing header: %q", p.Body)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r, _ := newPageFixture(t, 5)
	ctx := context.Background()

	first, err := r.Render(ctx, 1, 2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(ctx, 1, 2)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if first != second {
		t.Fatalf("render not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestRenderUnknownConfession(t *testing.T) {
	r, _ := newPageFixture(t, 0)
	if _, err := r.Render(context.Background(), 404, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderTruncatesLongComments(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	if _, err := store.CreateConfession(ctx, "short", 99, time.Now().Unix()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	long := strings.Repeat("a", 400)
	if _, err := store.CreateComment(ctx, 1, long, "👻", time.Now().Unix()); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	r := NewPageRenderer(store, "EAU Confession", 4)
	p, err := r.Render(ctx, 1, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Repeat("a", 247) + "..."
	if !strings.Contains(p.Body, want) {
		t.Fatalf("long comment not truncated to 247+ellipsis")
	}
	if strings.Contains(p.Body, strings.Repeat("a", 248)) {
		t.Fatalf("truncation budget exceeded")
	}
}
