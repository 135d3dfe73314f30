package pressroom

import (
	"strings"
	"sync"
	"time"
)

// PostCache is an in-memory snapshot of published posts and tags with TTL.
// All public reads go through it; pagination, tag filtering, search and
// related-post ranking are computed over the snapshot.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
// Called on admin save/delete and on comment creation, since active
// comment counts are part of the snapshot.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPublished()
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.posts = posts
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock on reload.
func (c *PostCache) ensureLoaded() ([]Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// Posts returns published posts, optionally filtered by tag.
func (c *PostCache) Posts(tag string) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// Tags returns all unique tags from published posts.
func (c *PostCache) Tags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// HasTag reports whether tag belongs to the published tag vocabulary.
func (c *PostCache) HasTag(tag string) (bool, error) {
	_, tags, err := c.ensureLoaded()
	if err != nil {
		return false, err
	}
	normalized := normalizeTag(tag)
	for _, t := range tags {
		if t == normalized {
			return true, nil
		}
	}
	return false, nil
}

// GetByDateSlug returns the published post matching publish year, month,
// day and slug.
func (c *PostCache) GetByDateSlug(year, month, day int, slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug &&
			p.Publish.Year() == year &&
			int(p.Publish.Month()) == month &&
			p.Publish.Day() == day {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// GetByID returns a published post by id (used by comment and share URLs,
// which address posts by id). Drafts are invisible here.
func (c *PostCache) GetByID(id int64) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
