// Package quote resolves quoted-post chains and keeps each channel's pending
// reply quote in a durable slot shared by every surface that renders it.
package quote

import "strings"

// QuotedPostPrefix prefixes every pending-quote slot key.
const QuotedPostPrefix = "quoted_post_"

// SlotKey is the storage key holding the pending quote of channelID.
func SlotKey(channelID string) string {
	return QuotedPostPrefix + channelID
}

// ChannelIDFromKey reverses SlotKey. ok is false for keys that are not
// quote slots.
func ChannelIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, QuotedPostPrefix) {
		return "", false
	}
	channelID := strings.TrimPrefix(key, QuotedPostPrefix)
	return channelID, channelID != ""
}
