package pressroom

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrDuplicateSlug is returned when a post would reuse a slug on the same
// publish day.
var ErrDuplicateSlug = errors.New("pressroom: slug already used on that publish day")

// Store wraps a SQLite database and provides CRUD operations for posts
// and comments.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of returning SQLITE_BUSY, foreign keys on so deleting a post
	// cascades to its comments. synchronous=NORMAL is safe with WAL and
	// avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    publish TEXT NOT NULL,
    created TEXT NOT NULL,
    updated TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'DF',
    tags TEXT NOT NULL DEFAULT ','
);
CREATE UNIQUE INDEX IF NOT EXISTS posts_slug_day ON posts (slug, date(publish));
CREATE INDEX IF NOT EXISTS posts_publish ON posts (publish DESC);
CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    body TEXT NOT NULL,
    created TEXT NOT NULL,
    updated TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS comments_created ON comments (created);
CREATE INDEX IF NOT EXISTS comments_post ON comments (post_id);
`)
	return err
}

const postColumns = `p.id, p.title, p.slug, p.author, p.body, p.publish, p.created, p.updated, p.status, p.tags,
	COALESCE(cc.n, 0)`

const commentCountJoin = `LEFT JOIN (
	SELECT post_id, COUNT(*) AS n FROM comments WHERE active = 1 GROUP BY post_id
) cc ON cc.post_id = p.id`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	var publish, created, updated, tags, status string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Author, &p.Body,
		&publish, &created, &updated, &status, &tags, &p.CommentCount)
	if err != nil {
		return Post{}, err
	}
	p.Status = Status(status)
	p.Tags = ParseTags(tags)
	if p.Publish, err = time.Parse(time.RFC3339, publish); err != nil {
		return Post{}, err
	}
	if p.Created, err = time.Parse(time.RFC3339, created); err != nil {
		return Post{}, err
	}
	if p.Updated, err = time.Parse(time.RFC3339, updated); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPublished returns all published posts ordered by publish date
// descending, with active comment counts.
func (s *Store) ListPublished() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts p ` + commentCountJoin + `
		WHERE p.status = 'PB' ORDER BY p.publish DESC`)
}

// ListAll returns every post, drafts included, ordered by publish date
// descending (for the admin dashboard).
func (s *Store) ListAll() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts p ` + commentCountJoin + `
		ORDER BY p.publish DESC`)
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE status = 'PB'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single post by id regardless of status (for admin).
func (s *Store) GetPost(id int64) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts p `+commentCountJoin+`
		WHERE p.id = ?`, id)
	return scanPost(row)
}

// SavePost inserts the post when ID is zero, otherwise updates it in place.
// Tags are normalized to lowercase, timestamps are maintained here.
func (s *Store) SavePost(p *Post) error {
	normalized := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}
	p.Tags = normalized
	tagString := "," + strings.Join(normalized, ",") + ","

	now := time.Now().UTC().Truncate(time.Second)
	p.Updated = now
	if p.Publish.IsZero() {
		p.Publish = now
	}

	var err error
	if p.ID == 0 {
		p.Created = now
		var res sql.Result
		res, err = s.db.Exec(`INSERT INTO posts (title, slug, author, body, publish, created, updated, status, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Title, p.Slug, p.Author, p.Body,
			p.Publish.UTC().Format(time.RFC3339), p.Created.Format(time.RFC3339),
			p.Updated.Format(time.RFC3339), string(p.Status), tagString)
		if err == nil {
			p.ID, err = res.LastInsertId()
		}
	} else {
		_, err = s.db.Exec(`UPDATE posts SET title = ?, slug = ?, author = ?, body = ?, publish = ?, updated = ?, status = ?, tags = ?
			WHERE id = ?`,
			p.Title, p.Slug, p.Author, p.Body,
			p.Publish.UTC().Format(time.RFC3339), p.Updated.Format(time.RFC3339),
			string(p.Status), tagString, p.ID)
	}
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return ErrDuplicateSlug
	}
	return err
}

// DeletePost removes a post by id; its comments cascade.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// AddComment stores a new active comment against a post.
func (s *Store) AddComment(c *Comment) error {
	now := time.Now().UTC().Truncate(time.Second)
	c.Created = now
	c.Updated = now
	c.Active = true
	res, err := s.db.Exec(`INSERT INTO comments (post_id, name, email, body, created, updated, active)
		VALUES (?, ?, ?, ?, ?, ?, 1)`,
		c.PostID, c.Name, c.Email, c.Body,
		c.Created.Format(time.RFC3339), c.Updated.Format(time.RFC3339))
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// ActiveComments returns the visible comments of a post, oldest first.
func (s *Store) ActiveComments(postID int64) ([]Comment, error) {
	rows, err := s.db.Query(`SELECT id, post_id, name, email, body, created, updated, active
		FROM comments WHERE post_id = ? AND active = 1 ORDER BY created, id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		var created, updated string
		var active int
		if err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &created, &updated, &active); err != nil {
			return nil, err
		}
		c.Active = active == 1
		if c.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, err
		}
		if c.Updated, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// DeactivateComment hides a comment without deleting it.
func (s *Store) DeactivateComment(id int64) error {
	_, err := s.db.Exec(`UPDATE comments SET active = 0, updated = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
