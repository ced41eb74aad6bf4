package moderation

import "testing"

func TestBlocked(t *testing.T) {
	f := NewFilter([]string{"badword1", "Badword2", " spaced ", ""})

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"clean", "hello world", false},
		{"exact", "badword1", true},
		{"case insensitive", "BADWORD1 here", true},
		{"mixed case term", "contains badword2 too", true},
		{"substring match", "xxbadword1xx", true},
		{"trimmed term", "very spaced indeed", true},
		{"empty text", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Blocked(tc.text); got != tc.want {
				t.Fatalf("Blocked(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestEmptyFilterBlocksNothing(t *testing.T) {
	f := NewFilter(nil)
	if f.Blocked("anything at all") {
		t.Fatal("empty filter should not block")
	}
}
