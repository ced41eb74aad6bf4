package bot

import (
	"context"
	"errors"
	"strconv"
	"sync"

	tele "gopkg.in/telebot.v4"
)

var errNotBound = errors.New("channel publisher: bot not bound")

// channelPublisher posts confessions to the public channel and maintains
// the comment-count keyboard on existing posts. The bot handle becomes
// available only after the Telegram runtime is built, so the publisher is
// constructed empty and bound in the startup hook.
type channelPublisher struct {
	mu        sync.RWMutex
	bot       *tele.Bot
	channelID int64
	username  string
}

func newChannelPublisher(channelID int64) *channelPublisher {
	return &channelPublisher{channelID: channelID}
}

// Bind attaches the live bot handle. Must be called before the first update
// is processed.
func (p *channelPublisher) Bind(bot *tele.Bot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bot = bot
	if bot.Me != nil {
		p.username = bot.Me.Username
	}
}

// Username returns the bot username used in deep links.
func (p *channelPublisher) Username() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.username
}

func (p *channelPublisher) handle() (*tele.Bot, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bot, p.username
}

// Publish posts the confession body to the channel with a zero-count
// keyboard and returns the channel message id.
func (p *channelPublisher) Publish(ctx context.Context, confessionID int64, body string) (int, error) {
	bot, username := p.handle()
	if bot == nil {
		return 0, errNotBound
	}
	msg, err := bot.Send(tele.ChatID(p.channelID), body, &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: channelKeyboard(username, confessionID, 0),
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// UpdateCommentCount rebuilds the keyboard on a channel post so the
// Browse Comments label shows the current count.
func (p *channelPublisher) UpdateCommentCount(ctx context.Context, messageID int, confessionID int64, count int) error {
	bot, username := p.handle()
	if bot == nil {
		return errNotBound
	}
	ref := &tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    p.channelID,
	}
	_, err := bot.EditReplyMarkup(ref, channelKeyboard(username, confessionID, count))
	return err
}
