package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eaulabs/confessbot/core/logger"
	"github.com/eaulabs/confessbot/internal/cooldown"
	"github.com/eaulabs/confessbot/internal/moderation"
)

// ConfessionStore is the persistence surface the confession workflow needs.
type ConfessionStore interface {
	CreateConfession(ctx context.Context, text string, authorID, ts int64) (int64, error)
	SetChannelMessage(ctx context.Context, id int64, messageID int) error
}

// Channel is the publish side of the board: the public post and its
// comment-count keyboard. Implemented by the Telegram layer.
type Channel interface {
	// Publish posts the confession body and returns the channel message id.
	Publish(ctx context.Context, confessionID int64, body string) (int, error)
	// UpdateCommentCount refreshes the keyboard on an existing post.
	UpdateCommentCount(ctx context.Context, messageID int, confessionID int64, count int) error
}

// ConfessionService runs a submission through validation, sequencing,
// publishing, and channel linkage.
type ConfessionService struct {
	store   ConfessionStore
	channel Channel
	filter  *moderation.Filter
	limiter *cooldown.Limiter
	board   string
	now     func() time.Time
}

// NewConfessionService wires the confession workflow.
func NewConfessionService(store ConfessionStore, channel Channel, filter *moderation.Filter, limiter *cooldown.Limiter, boardName string) *ConfessionService {
	return &ConfessionService{
		store:   store,
		channel: channel,
		filter:  filter,
		limiter: limiter,
		board:   boardName,
		now:     time.Now,
	}
}

// WithClock overrides the time source, for deterministic tests.
func (s *ConfessionService) WithClock(now func() time.Time) *ConfessionService {
	s.now = now
	return s
}

// BoardName returns the display name used in post titles.
func (s *ConfessionService) BoardName() string {
	return s.board
}

// Submit validates and publishes a confession. On success it returns the
// assigned id. Validation failures return a *Rejection and charge nothing.
// A failed channel publish returns the stored id together with ErrPublish:
// the confession stays orphaned and the cooldown is not charged.
func (s *ConfessionService) Submit(ctx context.Context, authorID int64, text string) (int64, error) {
	if d := s.limiter.Remaining(authorID, cooldown.ActionConfess); d > 0 {
		return 0, &Rejection{Kind: RejectCooldown, RetryAfter: cooldown.RetrySeconds(d)}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &Rejection{Kind: RejectEmpty}
	}
	if s.filter.Blocked(text) {
		return 0, &Rejection{Kind: RejectProfanity}
	}

	id, err := s.store.CreateConfession(ctx, text, authorID, s.now().Unix())
	if err != nil {
		return 0, err
	}

	body := FormatConfession(s.board, id, text)
	messageID, err := s.channel.Publish(ctx, id, body)
	if err != nil {
		logger.SVCConfessions.Warn("confession orphaned",
			slog.String("event", "confession.publish"),
			slog.String("status", "fail"),
			slog.Int64("confession_id", id),
			slog.String("err", err.Error()),
		)
		return id, fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if err := s.store.SetChannelMessage(ctx, id, messageID); err != nil {
		// The post is up; losing the linkage only disables count sync.
		logger.SVCConfessions.Error("channel linkage not persisted",
			slog.String("event", "confession.link"),
			slog.Int64("confession_id", id),
			slog.Int("message_id", messageID),
			slog.String("err", err.Error()),
		)
	}

	s.limiter.Touch(authorID, cooldown.ActionConfess)

	logger.SVCConfessions.Info("confession posted",
		slog.String("event", "confession.posted"),
		slog.String("status", "ok"),
		slog.Int64("confession_id", id),
		slog.Int("message_id", messageID),
	)
	return id, nil
}
