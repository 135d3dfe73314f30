package pressroom

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves a site-relative path against the site base URL.
func AbsoluteURL(base, sitePath string) string {
	u, err := url.Parse(base)
	if err != nil {
		return sitePath
	}
	u.Path = path.Join(u.Path, sitePath)
	if strings.HasSuffix(sitePath, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SimilarPosts returns up to limit posts sharing tags with current, ranked
// by the number of shared tags descending, then publish date descending.
func SimilarPosts(current Post, posts []Post, limit int) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}

	type ranked struct {
		post   Post
		shared int
	}
	var related []ranked
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		shared := 0
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				shared++
			}
		}
		if shared > 0 {
			related = append(related, ranked{post: p, shared: shared})
		}
	}
	sort.SliceStable(related, func(i, j int) bool {
		if related[i].shared != related[j].shared {
			return related[i].shared > related[j].shared
		}
		return related[i].post.Publish.After(related[j].post.Publish)
	})
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	out := make([]Post, len(related))
	for i, r := range related {
		out[i] = r.post
	}
	return out
}

// JoinTags joins tags with ", " for form fields and meta keywords.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
