package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	coreconfig "github.com/eaulabs/confessbot/core/config"
	"github.com/eaulabs/confessbot/core/logger"
	"github.com/eaulabs/confessbot/core/telegram/callbacks"
	tghelpers "github.com/eaulabs/confessbot/core/telegram/helpers"
	"github.com/eaulabs/confessbot/core/telegram/keyboard"
	"github.com/eaulabs/confessbot/core/telegram/state"
	"github.com/eaulabs/confessbot/internal/board"

	tele "gopkg.in/telebot.v4"
)

// stateAwaitingComment marks a user who was asked to type their comment.
const stateAwaitingComment = state.State("awaiting_comment")

// tempConfessionID is the session key holding the target confession.
const tempConfessionID = "confession_id"

type handlers struct {
	board       coreconfig.BoardConfig
	confessions *board.ConfessionService
	comments    *board.CommentService
	pages       *board.PageRenderer
	fsm         state.Manager
	publisher   *channelPublisher
}

// start greets the user and resolves deep-link payloads. A deep link either
// opens a comment page (view_<id>) or starts the comment conversation
// (add_<id>); a malformed payload falls through to the plain greeting.
func (h *handlers) start(c tele.Context) error {
	userID := c.Sender().ID
	h.fsm.Clear(userID)

	if err := tghelpers.SendText(c, "Welcome to EAU Confessions — send an anonymous confession and I'll post it.\n\n", &tele.SendOptions{ReplyMarkup: topMenu()}); err != nil {
		return err
	}

	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		return nil
	}

	if id, ok := parseDeepLink(payload, "view_"); ok {
		return h.sendCommentsPage(c, id, 1)
	}
	if id, ok := parseDeepLink(payload, "add_"); ok {
		h.fsm.SetTemp(userID, tempConfessionID, id)
		h.fsm.SetState(userID, stateAwaitingComment)
		return tghelpers.SendText(c, "Send your comment:")
	}
	return nil
}

func parseDeepLink(payload, prefix string) (int64, bool) {
	if !strings.HasPrefix(payload, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(payload[len(prefix):], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *handlers) help(c tele.Context) error {
	return tghelpers.SendText(c, "Use the buttons in the channel to interact with confessions.")
}

// stop lets the user abandon the comment conversation.
func (h *handlers) stop(c tele.Context) error {
	userID := c.Sender().ID
	if !h.fsm.InProgress(userID) {
		return tghelpers.SendText(c, "Nothing to stop. You're not in any active process.", &tele.SendOptions{ReplyMarkup: topMenu()})
	}
	h.fsm.Clear(userID)
	return tghelpers.SendText(c, "Operation cancelled. You can now use the main menu.", &tele.SendOptions{ReplyMarkup: topMenu()})
}

// onText handles menu buttons and treats any other private-chat text as a
// confession submission.
func (h *handlers) onText(c tele.Context) error {
	switch c.Text() {
	case menuConfess:
		return tghelpers.SendText(c, "Send your confession now.", &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()})
	case menuBrowse:
		if err := tghelpers.SendText(c, "Browse confessions:", &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()}); err != nil {
			return err
		}
		return tghelpers.SendText(c, h.board.ChannelLink)
	}

	if c.Chat() == nil || c.Chat().Type != tele.ChatPrivate {
		return nil
	}
	return h.receiveConfession(c)
}

func (h *handlers) receiveConfession(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := h.confessions.Submit(ctx, c.Sender().ID, c.Text())
	if err != nil {
		if rej, ok := board.AsRejection(err); ok {
			switch rej.Kind {
			case board.RejectCooldown:
				return tghelpers.SendText(c, fmt.Sprintf("Wait %ds before sending another confession.", rej.RetryAfter))
			case board.RejectEmpty:
				return tghelpers.SendText(c, "Empty confession.")
			case board.RejectProfanity:
				return tghelpers.SendText(c, "Your confession contains banned words.")
			}
		}
		if errors.Is(err, board.ErrPublish) {
			return tghelpers.SendText(c, "Bot cannot post in channel.")
		}
		_ = tghelpers.SendText(c, "Something went wrong. Please try again later.")
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Posted as %s #%d", h.confessions.BoardName(), id))
}

// receiveComment consumes the message sent while awaiting_comment is active.
// The conversation always ends here, whatever the outcome.
func (h *handlers) receiveComment(c tele.Context) error {
	userID := c.Sender().ID
	defer h.fsm.Clear(userID)

	confessionID, ok := h.fsm.GetTempInt64(userID, tempConfessionID)
	if !ok {
		return tghelpers.SendText(c, "Session expired.")
	}

	ctx := tghelpers.BuildContext(c)
	if err := h.comments.Add(ctx, userID, confessionID, c.Text()); err != nil {
		if rej, ok := board.AsRejection(err); ok {
			switch rej.Kind {
			case board.RejectCooldown:
				return tghelpers.SendText(c, fmt.Sprintf("Wait %ds before commenting again.", rej.RetryAfter))
			case board.RejectEmpty:
				return tghelpers.SendText(c, "Comment canceled.")
			case board.RejectProfanity:
				return tghelpers.SendText(c, "Your comment contains banned words.")
			}
		}
		if errors.Is(err, board.ErrNotFound) {
			return tghelpers.SendText(c, "Confession not found.")
		}
		_ = tghelpers.SendText(c, "Something went wrong. Please try again later.")
		return err
	}
	return tghelpers.SendText(c, "Comment added!")
}

// onPageCallback flips to another page of a comment thread in place.
func (h *handlers) onPageCallback(c tele.Context) error {
	confessionID, pageNum, err := callbacks.PayloadTwoInt64(c, ":")
	if err != nil {
		return tghelpers.SendText(c, "Could not load that page.")
	}

	ctx := tghelpers.BuildContext(c)
	page, err := h.pages.Render(ctx, confessionID, int(pageNum))
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return tghelpers.SendText(c, "Confession not found.")
		}
		return tghelpers.SendText(c, "Could not load that page.")
	}

	kb := pageKeyboard(h.publisher.Username(), page.ConfessionID, page.Number, page.Total)
	if err := tghelpers.EditHTML(c, page.Body, kb); err != nil {
		// Too-old or unchanged messages refuse edits; the thread keeps
		// its current page rather than gaining a duplicate.
		logger.Warn(ctx, "bot", "page.edit_failed",
			slog.Int64("confession_id", page.ConfessionID),
			slog.Int("page", page.Number),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

// sendCommentsPage sends a fresh comment-page message, used by the view deep link.
func (h *handlers) sendCommentsPage(c tele.Context, confessionID int64, pageNum int) error {
	ctx := tghelpers.BuildContext(c)
	page, err := h.pages.Render(ctx, confessionID, pageNum)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return tghelpers.SendText(c, "Confession not found.")
		}
		return tghelpers.SendText(c, "Could not load that page.")
	}
	kb := pageKeyboard(h.publisher.Username(), page.ConfessionID, page.Number, page.Total)
	return tghelpers.SendHTML(c, page.Body, kb)
}
