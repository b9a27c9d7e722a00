package common

import (
	"time"
)

// Post is a chat message as seen by the quote core. It is owned by the chat
// store and never mutated here.
type Post struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel_id"`
	UserID       string    `json:"user_id"`
	Message      string    `json:"message"`
	QuotedPostID string    `json:"quoted_post_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileInfo describes one file attached to a post.
type FileInfo struct {
	ID       string `json:"id"`
	PostID   string `json:"post_id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Position int    `json:"position"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// QuotedReference is the snapshot stored in a channel's pending-quote slot.
// Field names are the slot's wire format.
type QuotedReference struct {
	PostID      string `json:"postId"`
	Message     string `json:"message"`
	ChannelID   string `json:"channelId"`
	UserID      string `json:"userId"`
	ChannelType string `json:"channelType"`
}

type EventSource string

const (
	// SourceLocal is raised by writes made through this process's bridge.
	SourceLocal EventSource = "quotedPostChanged"
	// SourceStorage is raised by the storage backend for writes made elsewhere.
	SourceStorage EventSource = "storage"
)

// QuoteEvent is an invalidation signal. It never carries the new value;
// observers re-read the slot.
type QuoteEvent struct {
	Source    EventSource
	ChannelID string
	Key       string
}
