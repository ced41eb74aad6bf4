// Package board implements the confession board: persistence, the
// confession and comment workflows, and the comment page renderer.
package board

import "database/sql"

// Confession is an anonymous post assigned a sequential public id.
// AuthorID is kept for cooldown/abuse purposes and never exposed to readers.
type Confession struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
	// Timestamp is the creation time as a Unix timestamp.
	Timestamp int64 `db:"timestamp"`
	// ChannelMessageID links the confession to its public channel post.
	// Invalid means the publish failed and the confession is orphaned.
	ChannelMessageID sql.NullInt64 `db:"channel_message_id"`
	AuthorID         int64         `db:"author_id"`
}

// Comment is a reply attached to a confession. The avatar glyph is picked at
// creation time and never changes.
type Comment struct {
	ID           int64  `db:"id"`
	ConfessionID int64  `db:"confession_id"`
	Text         string `db:"text"`
	Avatar       string `db:"avatar"`
	Timestamp    int64  `db:"timestamp"`
}
