package router

import (
	"testing"

	tg "github.com/eaulabs/confessbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

func TestTextRoutesCoverMediaCaptions(t *testing.T) {
	routes := TextRoutes(nil, tg.NewRegistry(), TextOptions{})
	endpoints := make(map[any]bool, len(routes))
	for _, r := range routes {
		if r.Handler == nil {
			t.Fatalf("route %v has no handler", r.Endpoint)
		}
		endpoints[r.Endpoint] = true
	}
	if !endpoints[tele.OnText] {
		t.Fatal("text endpoint not routed")
	}
	if !endpoints[tele.OnMedia] {
		t.Fatal("media endpoint not routed, captions would be dropped")
	}
}
