package inkpress

import (
	"strings"
	"sync"
	"time"
)

// postCache is an in-memory cache of the sorted post list and tag set with
// TTL. It caches metadata and raw markdown only; HTML is still rendered per
// request from the cached content.
type postCache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	repo    *Repo
}

func newPostCache(r *Repo, ttl time.Duration) *postCache {
	return &postCache{repo: r, ttl: ttl}
}

func (c *postCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
// Called after writes and by the content watcher.
func (c *postCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts and tags after ensuring the cache is
// fresh. Read lock fast path; write lock only when a reload is needed.
func (c *postCache) ensureLoaded() ([]Post, []string) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		posts := c.repo.GetAllSorted()
		if posts == nil {
			posts = []Post{}
		}
		c.posts = posts
		c.tags = collectTags(posts)
		c.fetched = time.Now()
	}
	return c.posts, c.tags
}

// ListPosts returns all posts date-descending, optionally filtered by tag.
func (c *postCache) ListPosts(tag string) []Post {
	posts, _ := c.ensureLoaded()
	if tag == "" {
		return posts
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// ListTags returns all unique tags across posts.
func (c *postCache) ListTags() []string {
	_, tags := c.ensureLoaded()
	return tags
}

// GetPost returns a single post by slug from the cache.
func (c *postCache) GetPost(slug string) (Post, bool) {
	posts, _ := c.ensureLoaded()
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
