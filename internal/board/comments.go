package board

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/eaulabs/confessbot/core/logger"
	"github.com/eaulabs/confessbot/internal/cooldown"
	"github.com/eaulabs/confessbot/internal/moderation"
)

// CommentStore is the persistence surface the comment workflow needs.
type CommentStore interface {
	GetConfession(ctx context.Context, id int64) (Confession, error)
	CreateComment(ctx context.Context, confessionID int64, text, avatar string, ts int64) (int64, error)
	CountComments(ctx context.Context, confessionID int64) (int, error)
}

// CommentService validates a comment, stores it, and refreshes the comment
// count on the channel post.
type CommentService struct {
	store   CommentStore
	channel Channel
	filter  *moderation.Filter
	limiter *cooldown.Limiter
	avatars []string
	now     func() time.Time
	pick    func(n int) int
}

// NewCommentService wires the comment workflow. The avatar palette must be
// non-empty; config normalization guarantees that.
func NewCommentService(store CommentStore, channel Channel, filter *moderation.Filter, limiter *cooldown.Limiter, avatars []string) *CommentService {
	return &CommentService{
		store:   store,
		channel: channel,
		filter:  filter,
		limiter: limiter,
		avatars: append([]string(nil), avatars...),
		now:     time.Now,
		pick:    rand.IntN,
	}
}

// WithClock overrides the time source, for deterministic tests.
func (s *CommentService) WithClock(now func() time.Time) *CommentService {
	s.now = now
	return s
}

// WithPicker overrides avatar selection, for deterministic tests.
func (s *CommentService) WithPicker(pick func(n int) int) *CommentService {
	s.pick = pick
	return s
}

// Add stores a comment for the confession. Validation failures return a
// *Rejection; an unknown confession returns ErrNotFound. The channel
// keyboard refresh is best-effort: its failure is logged and swallowed
// because the comment itself is already durable.
func (s *CommentService) Add(ctx context.Context, userID, confessionID int64, text string) error {
	if d := s.limiter.Remaining(userID, cooldown.ActionComment); d > 0 {
		return &Rejection{Kind: RejectCooldown, RetryAfter: cooldown.RetrySeconds(d)}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &Rejection{Kind: RejectEmpty}
	}
	if s.filter.Blocked(text) {
		return &Rejection{Kind: RejectProfanity}
	}

	conf, err := s.store.GetConfession(ctx, confessionID)
	if err != nil {
		return err
	}

	avatar := s.avatars[s.pick(len(s.avatars))]
	commentID, err := s.store.CreateComment(ctx, confessionID, text, avatar, s.now().Unix())
	if err != nil {
		return err
	}

	s.syncCount(ctx, conf)
	s.limiter.Touch(userID, cooldown.ActionComment)

	logger.SVCComments.Info("comment added",
		slog.String("event", "comment.added"),
		slog.String("status", "ok"),
		slog.Int64("confession_id", confessionID),
		slog.Int64("comment_id", commentID),
	)
	return nil
}

// syncCount refreshes the "Browse Comments (N)" label on the channel post.
// The keyboard is a cache of the stored count, not the source of truth, so
// every failure here is non-fatal.
func (s *CommentService) syncCount(ctx context.Context, conf Confession) {
	if !conf.ChannelMessageID.Valid {
		// Orphaned confession: nothing on the channel to refresh.
		return
	}
	count, err := s.store.CountComments(ctx, conf.ID)
	if err != nil {
		logger.SVCComments.Warn("comment count lookup failed",
			slog.String("event", "comment.sync"),
			slog.Int64("confession_id", conf.ID),
			slog.String("err", err.Error()),
		)
		return
	}
	if err := s.channel.UpdateCommentCount(ctx, int(conf.ChannelMessageID.Int64), conf.ID, count); err != nil {
		logger.SVCComments.Warn("channel keyboard refresh failed",
			slog.String("event", "comment.sync"),
			slog.Int64("confession_id", conf.ID),
			slog.Int("count", count),
			slog.String("err", err.Error()),
		)
	}
}
