package board

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// PageStore is the read surface the page renderer needs.
type PageStore interface {
	GetConfession(ctx context.Context, id int64) (Confession, error)
	CountComments(ctx context.Context, confessionID int64) (int, error)
	ListComments(ctx context.Context, confessionID int64, limit, offset int) ([]Comment, error)
}

// Page is one rendered view of a confession's comment thread. The body is
// Telegram HTML; navigation facts let the transport build its keyboard.
type Page struct {
	ConfessionID int64
	Number       int
	Total        int
	Body         string
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.Total }

// PageRenderer paginates and formats comment threads.
type PageRenderer struct {
	store    PageStore
	board    string
	pageSize int
}

// NewPageRenderer builds a renderer with a fixed page size.
func NewPageRenderer(store PageStore, boardName string, pageSize int) *PageRenderer {
	if pageSize < 1 {
		pageSize = 1
	}
	return &PageRenderer{store: store, board: boardName, pageSize: pageSize}
}

// Render produces the requested page. Out-of-range page numbers clamp to the
// valid range instead of failing; an unknown confession returns ErrNotFound.
// Rendering reads only, so identical calls yield identical pages.
func (r *PageRenderer) Render(ctx context.Context, confessionID int64, page int) (Page, error) {
	conf, err := r.store.GetConfession(ctx, confessionID)
	if err != nil {
		return Page{}, err
	}

	total, err := r.store.CountComments(ctx, confessionID)
	if err != nil {
		return Page{}, err
	}
	totalPages := (total + r.pageSize - 1) / r.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * r.pageSize

	comments, err := r.store.ListComments(ctx, confessionID, r.pageSize, offset)
	if err != nil {
		return Page{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👀 <b>%s #%d</b>\n\n%s\n\n", r.board, conf.ID, html.EscapeString(conf.Text))
	fmt.Fprintf(&b, "💬 Comments (page %d/%d):\n\n", page, totalPages)
	for _, c := range comments {
		fmt.Fprintf(&b, "%s <b>Comment #%d</b>\n%s\n\n", c.Avatar, c.ID, html.EscapeString(Snippet(c.Text)))
	}

	return Page{
		ConfessionID: confessionID,
		Number:       page,
		Total:        totalPages,
		Body:         b.String(),
	}, nil
}
