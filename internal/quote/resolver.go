package quote

import (
	"goquote/internal/common"
)

// MaxQuoteHops bounds every chain walk. It is a safety limit against cyclic
// or runaway chains and must not be made configurable.
const MaxQuoteHops = 5

// Resolution is the outcome of a chain walk.
type Resolution struct {
	// Post is the terminal post, nil when the start post is not loaded.
	Post *common.Post
	Hops int
	// Truncated is set when the walk stopped on MaxQuoteHops while the
	// terminal still quotes a loaded post.
	Truncated bool
}

// Resolve follows quoted_post_id references from postID. Missing links end
// the walk at the last post found; they are not errors.
func Resolve(posts common.PostLookup, postID string) Resolution {
	if postID == "" {
		return Resolution{}
	}

	current, ok := posts.Post(postID)
	if !ok || current == nil {
		return Resolution{}
	}

	hops := 0
	for hops < MaxQuoteHops {
		nextID := current.QuotedPostID
		if nextID == "" {
			break
		}
		next, ok := posts.Post(nextID)
		if !ok || next == nil {
			break
		}
		current = next
		hops++
	}

	res := Resolution{Post: current, Hops: hops}
	if hops == MaxQuoteHops && current.QuotedPostID != "" {
		if next, ok := posts.Post(current.QuotedPostID); ok && next != nil {
			res.Truncated = true
		}
	}
	return res
}

// ResolveTerminal returns only the terminal post of Resolve.
func ResolveTerminal(posts common.PostLookup, postID string) *common.Post {
	return Resolve(posts, postID).Post
}
