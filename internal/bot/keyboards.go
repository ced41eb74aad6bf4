package bot

import (
	"fmt"

	"github.com/eaulabs/confessbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	menuConfess = "📝 Confess"
	menuBrowse  = "👀 Browse Confessions"

	cbPage = "page"
)

// deepLink builds a t.me start link that reopens the bot in private chat.
// kind is "view" or "add".
func deepLink(botUsername, kind string, confessionID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s_%d", botUsername, kind, confessionID)
}

// topMenu is the persistent reply keyboard shown in private chats.
func topMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{menuConfess},
		[]string{menuBrowse},
	)
}

// channelKeyboard is attached to every channel post. Both buttons are deep
// links because channel readers cannot talk to the bot from the channel.
func channelKeyboard(botUsername string, confessionID int64, commentCount int) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{
			Text: fmt.Sprintf("👀 Browse Comments (%d)", commentCount),
			URL:  deepLink(botUsername, "view", confessionID),
		},
		{
			Text: "➕ Add Comment",
			URL:  deepLink(botUsername, "add", confessionID),
		},
	})
}

// pageKeyboard navigates a comment thread. Prev and Next share a row and
// appear only when the neighbouring page exists.
func pageKeyboard(botUsername string, confessionID int64, page, totalPages int) *tele.ReplyMarkup {
	var nav []keyboard.InlineBtn
	if page > 1 {
		nav = append(nav, keyboard.InlineBtn{
			Text:   "⬅️ Prev",
			Unique: cbPage,
			Data:   fmt.Sprintf("%d:%d", confessionID, page-1),
		})
	}
	if page < totalPages {
		nav = append(nav, keyboard.InlineBtn{
			Text:   "Next ➡️",
			Unique: cbPage,
			Data:   fmt.Sprintf("%d:%d", confessionID, page+1),
		})
	}

	add := []keyboard.InlineBtn{{
		Text: "➕ Add Comment",
		URL:  deepLink(botUsername, "add", confessionID),
	}}

	if len(nav) == 0 {
		return keyboard.InlineButtonsRows(add)
	}
	return keyboard.InlineButtonsRows(nav, add)
}
