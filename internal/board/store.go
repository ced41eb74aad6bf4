package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists confessions and comments in Postgres.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateConfession inserts a confession and returns its assigned id in the
// same statement. The id that reaches the channel post must be the one the
// insert generated, so this never re-reads a max id.
func (s *Store) CreateConfession(ctx context.Context, text string, authorID, ts int64) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO confessions (text, timestamp, author_id) VALUES ($1, $2, $3) RETURNING id`,
		text, ts, authorID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert confession: %w", err)
	}
	return id, nil
}

// SetChannelMessage links a confession to its channel post. The guard keeps
// the linkage write-once: a second publish can never overwrite it.
func (s *Store) SetChannelMessage(ctx context.Context, id int64, messageID int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE confessions SET channel_message_id = $1 WHERE id = $2 AND channel_message_id IS NULL`,
		messageID, id,
	)
	if err != nil {
		return fmt.Errorf("set channel message for confession %d: %w", id, err)
	}
	return nil
}

// GetConfession loads a confession by id.
func (s *Store) GetConfession(ctx context.Context, id int64) (Confession, error) {
	var c Confession
	err := s.db.GetContext(ctx, &c,
		`SELECT id, text, timestamp, channel_message_id, author_id FROM confessions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Confession{}, ErrNotFound
	}
	if err != nil {
		return Confession{}, fmt.Errorf("get confession %d: %w", id, err)
	}
	return c, nil
}

// CreateComment inserts a comment and returns its assigned id.
func (s *Store) CreateComment(ctx context.Context, confessionID int64, text, avatar string, ts int64) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO comments (confession_id, text, avatar, timestamp) VALUES ($1, $2, $3, $4) RETURNING id`,
		confessionID, text, avatar, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert comment for confession %d: %w", confessionID, err)
	}
	return id, nil
}

// CountComments returns the number of comments attached to a confession.
func (s *Store) CountComments(ctx context.Context, confessionID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM comments WHERE confession_id = $1`, confessionID)
	if err != nil {
		return 0, fmt.Errorf("count comments for confession %d: %w", confessionID, err)
	}
	return n, nil
}

// ListComments returns a page of comments, newest first.
func (s *Store) ListComments(ctx context.Context, confessionID int64, limit, offset int) ([]Comment, error) {
	var out []Comment
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, confession_id, text, avatar, timestamp
		   FROM comments
		  WHERE confession_id = $1
		  ORDER BY id DESC
		  LIMIT $2 OFFSET $3`,
		confessionID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments for confession %d: %w", confessionID, err)
	}
	return out, nil
}
