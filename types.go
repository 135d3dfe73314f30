package pressroom

import (
	"fmt"
	"time"
)

// Status is the publication lifecycle state of a post.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

// Post is the core content type stored in SQLite and rendered by templates.
// Slug is unique per publish day, so older posts can reuse a slug.
type Post struct {
	ID      int64
	Title   string
	Slug    string
	Author  string
	Body    string
	Publish time.Time
	Created time.Time
	Updated time.Time
	Status  Status
	Tags    []string

	// CommentCount is the number of active comments, filled by list queries.
	CommentCount int
}

// Published reports whether the post is visible to readers.
func (p Post) Published() bool {
	return p.Status == StatusPublished
}

// Path returns the canonical site-relative URL of the post,
// addressed by publish date and slug.
func (p Post) Path() string {
	return fmt.Sprintf("/blog/%d/%d/%d/%s/",
		p.Publish.Year(), int(p.Publish.Month()), p.Publish.Day(), p.Slug)
}

// Comment is a reader-submitted annotation attached to a post.
// Inactive comments stay in the database but are never rendered.
type Comment struct {
	ID      int64
	PostID  int64
	Name    string
	Email   string
	Body    string
	Created time.Time
	Updated time.Time
	Active  bool
}

// Image describes an uploaded image file served from the static uploads dir.
type Image struct {
	Filename   string
	Size       int64
	UploadedAt string
}
