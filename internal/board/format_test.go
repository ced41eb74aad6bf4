package board

import (
	"strings"
	"testing"
)

func TestFormatConfession(t *testing.T) {
	got := FormatConfession("EAU Confession", 7, "a <b> & c")
	want := "👀 <b>EAU Confession #7</b>\n\na &lt;b&gt; &amp; c\n\n#Other"
	if got != want {
		t.Fatalf("format:\n got %q\nwant %q", got, want)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("short"); got != "short" {
		t.Fatalf("short text altered: %q", got)
	}

	exact := strings.Repeat("x", 250)
	if got := Snippet(exact); got != exact {
		t.Fatalf("text at the budget must not be cut")
	}

	long := strings.Repeat("x", 251)
	got := Snippet(long)
	if got != strings.Repeat("x", 247)+"..." {
		t.Fatalf("snippet = %d runes, tail %q", len([]rune(got)), got[len(got)-5:])
	}

	// Multibyte safety: runes, not bytes.
	emoji := strings.Repeat("🦄", 300)
	cut := Snippet(emoji)
	if len([]rune(cut)) != 250 {
		t.Fatalf("emoji snippet = %d runes", len([]rune(cut)))
	}
}
