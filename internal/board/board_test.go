package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/eaulabs/confessbot/internal/cooldown"
	"github.com/eaulabs/confessbot/internal/moderation"
)

// memStore is an in-memory stand-in for Store with the same id semantics:
// ids are assigned by the insert, strictly increasing, never reused.
type memStore struct {
	confessions    map[int64]Confession
	comments       map[int64]Comment
	nextConfession int64
	nextComment    int64

	failCreateComment bool
}

func newMemStore() *memStore {
	return &memStore{
		confessions: make(map[int64]Confession),
		comments:    make(map[int64]Comment),
	}
}

func (m *memStore) CreateConfession(_ context.Context, text string, authorID, ts int64) (int64, error) {
	m.nextConfession++
	id := m.nextConfession
	m.confessions[id] = Confession{ID: id, Text: text, Timestamp: ts, AuthorID: authorID}
	return id, nil
}

func (m *memStore) SetChannelMessage(_ context.Context, id int64, messageID int) error {
	c, ok := m.confessions[id]
	if !ok {
		return fmt.Errorf("no confession %d", id)
	}
	if c.ChannelMessageID.Valid {
		return nil
	}
	c.ChannelMessageID = sql.NullInt64{Int64: int64(messageID), Valid: true}
	m.confessions[id] = c
	return nil
}

func (m *memStore) GetConfession(_ context.Context, id int64) (Confession, error) {
	c, ok := m.confessions[id]
	if !ok {
		return Confession{}, ErrNotFound
	}
	return c, nil
}

func (m *memStore) CreateComment(_ context.Context, confessionID int64, text, avatar string, ts int64) (int64, error) {
	if m.failCreateComment {
		return 0, errors.New("insert failed")
	}
	m.nextComment++
	id := m.nextComment
	m.comments[id] = Comment{ID: id, ConfessionID: confessionID, Text: text, Avatar: avatar, Timestamp: ts}
	return id, nil
}

func (m *memStore) CountComments(_ context.Context, confessionID int64) (int, error) {
	n := 0
	for _, c := range m.comments {
		if c.ConfessionID == confessionID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListComments(_ context.Context, confessionID int64, limit, offset int) ([]Comment, error) {
	var all []Comment
	for _, c := range m.comments {
		if c.ConfessionID == confessionID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// fakeChannel records publishes and keyboard refreshes.
type fakeChannel struct {
	nextMessageID int
	posts         map[int]string // message id -> body
	counts        map[int]int    // message id -> last synced count

	failPublish bool
	failUpdate  bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{posts: make(map[int]string), counts: make(map[int]int)}
}

func (f *fakeChannel) Publish(_ context.Context, _ int64, body string) (int, error) {
	if f.failPublish {
		return 0, errors.New("forbidden: bot is not a member of the channel chat")
	}
	f.nextMessageID++
	f.posts[f.nextMessageID] = body
	f.counts[f.nextMessageID] = 0
	return f.nextMessageID, nil
}

func (f *fakeChannel) UpdateCommentCount(_ context.Context, messageID int, _ int64, count int) error {
	if f.failUpdate {
		return errors.New("message to edit not found")
	}
	f.counts[messageID] = count
	return nil
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testLimiter(clock *fixedClock) *cooldown.Limiter {
	return cooldown.New(map[cooldown.Action]time.Duration{
		cooldown.ActionConfess: 30 * time.Second,
		cooldown.ActionComment: 10 * time.Second,
	}).WithClock(clock.Now)
}

func testFilter() *moderation.Filter {
	return moderation.NewFilter([]string{"badword1", "badword2"})
}
