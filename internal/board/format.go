package board

import (
	"fmt"
	"html"
)

// snippetLimit is the character budget for a comment shown on a page.
const snippetLimit = 250

// FormatConfession renders the channel post body in Telegram HTML parse mode.
func FormatConfession(boardName string, id int64, text string) string {
	return fmt.Sprintf("👀 <b>%s #%d</b>\n\n%s\n\n#Other", boardName, id, html.EscapeString(text))
}

// Snippet truncates comment text to the display budget, marking the cut with
// an ellipsis. Operates on runes so multibyte text is never split.
func Snippet(text string) string {
	r := []rune(text)
	if len(r) <= snippetLimit {
		return text
	}
	return string(r[:snippetLimit-3]) + "..."
}
