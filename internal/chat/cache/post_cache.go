// Package cache holds the posts, files and users a process has loaded. The
// quote resolver reads it synchronously.
package cache

import (
	"sort"
	"sync"

	"goquote/internal/common"
)

type PostCache struct {
	mu    sync.RWMutex
	posts map[string]*common.Post
	files map[string][]common.FileInfo
	users map[string]*common.User
}

func NewPostCache() *PostCache {
	return &PostCache{
		posts: make(map[string]*common.Post),
		files: make(map[string][]common.FileInfo),
		users: make(map[string]*common.User),
	}
}

func (c *PostCache) Put(posts ...*common.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		cp := *p
		c.posts[p.ID] = &cp
	}
}

// PutFiles replaces the files of postID, ordered by Position.
func (c *PostCache) PutFiles(postID string, files []common.FileInfo) {
	sorted := append([]common.FileInfo(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[postID] = sorted
}

func (c *PostCache) PutUser(users ...*common.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range users {
		if u == nil || u.ID == "" {
			continue
		}
		cp := *u
		c.users[u.ID] = &cp
	}
}

// Post returns a copy so callers cannot mutate cached posts.
func (c *PostCache) Post(id string) (*common.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.posts[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

func (c *PostCache) HasPost(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.posts[id]
	return ok
}

func (c *PostCache) HasUser(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.users[id]
	return ok
}

func (c *PostCache) FilesForPost(postID string) []common.FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]common.FileInfo(nil), c.files[postID]...)
}

func (c *PostCache) User(id string) (*common.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}
