package common

import (
	"context"
)

// PostLookup is a synchronous read against already-loaded posts.
type PostLookup interface {
	Post(id string) (*Post, bool)
}

type FileLookup interface {
	FilesForPost(postID string) []FileInfo
}

type UserLookup interface {
	User(id string) (*User, bool)
}

// SlotStorage is a string keyed durable store. Get reports found=false for a
// missing key.
type SlotStorage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// WatchableStorage reports keys changed by other writers. Watch blocks until
// ctx is done.
type WatchableStorage interface {
	SlotStorage
	Watch(ctx context.Context, fn func(key string)) error
}

type Observer interface {
	Update(event QuoteEvent) error
	Name() string
}

type Subject interface {
	Subscribe(channelID string, observer Observer)
	Unsubscribe(channelID string, observer Observer)
	Notify(event QuoteEvent)
	NotifyAsync(event QuoteEvent)
}
