package quote

import (
	"sync"

	"goquote/internal/common"
)

type postMap map[string]*common.Post

func (m postMap) Post(id string) (*common.Post, bool) {
	p, ok := m[id]
	return p, ok
}

// chain builds p1 -> p2 -> ... -> pn, each quoting the next.
func chain(n int) postMap {
	posts := postMap{}
	for i := 1; i <= n; i++ {
		p := &common.Post{
			ID:        postID(i),
			ChannelID: "c1",
			UserID:    "u1",
			Message:   "message " + postID(i),
		}
		if i < n {
			p.QuotedPostID = postID(i + 1)
		}
		posts[p.ID] = p
	}
	return posts
}

func postID(i int) string {
	return "p" + string(rune('0'+i))
}

type fileMap map[string][]common.FileInfo

func (m fileMap) FilesForPost(postID string) []common.FileInfo {
	return m[postID]
}

type userMap map[string]*common.User

func (m userMap) User(id string) (*common.User, bool) {
	u, ok := m[id]
	return u, ok
}

type recordingObserver struct {
	name string
	mu   sync.Mutex
	got  []common.QuoteEvent
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Update(event common.QuoteEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, event)
	return nil
}

func (o *recordingObserver) events() []common.QuoteEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]common.QuoteEvent(nil), o.got...)
}
