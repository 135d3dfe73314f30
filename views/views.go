// Package views provides the default templ components for a pressroom site.
// Components are plain templ.ComponentFunc values so sites can replace any
// of them through pressroom.ViewFuncs.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/westeastdesigns/pressroom"
)

// Views renders the default site templates. All components close over the
// site configuration so nothing is hardcoded.
type Views struct {
	cfg pressroom.SiteConfig
}

// Funcs builds the default ViewFuncs for the given site configuration.
func Funcs(cfg pressroom.SiteConfig) pressroom.ViewFuncs {
	v := &Views{cfg: cfg}
	return pressroom.ViewFuncs{
		List:           v.List,
		Detail:         v.Detail,
		CommentResult:  v.CommentResult,
		Share:          v.Share,
		Search:         v.Search,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminForm:      v.AdminForm,
		AdminImages:    v.AdminImages,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
	}
}

func esc(s string) string {
	return html.EscapeString(s)
}

// component wraps a write function as a templ.Component.
func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return fn(w)
	})
}

// page renders the site shell around body. sb is optional; public pages
// pass it to get the sidebar.
func (v *Views) page(title string, sb *pressroom.Sidebar, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fullTitle := v.cfg.Name
		if title != "" {
			fullTitle = title + " — " + v.cfg.Name
		}
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<meta name="description" content="%s">
<link rel="stylesheet" href="/public/site.css">
<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">
</head>
<body>
<header class="site-header">
<a class="site-name" href="/">%s</a>
<nav><a href="/">Posts</a> <a href="/search/">Search</a> <a href="/feed.xml">RSS</a></nav>
</header>
<main>`,
			esc(fullTitle), esc(v.cfg.Description), esc(v.cfg.Name), esc(v.cfg.Name)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}
		if sb != nil {
			if err := v.sidebar(*sb).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<footer class="site-footer"><p>%s</p></footer>
</body>
</html>`, esc(v.cfg.Description))
		return err
	})
}

func (v *Views) sidebar(sb pressroom.Sidebar) templ.Component {
	return component(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<aside class="sidebar">
<h2>%s</h2>
<p>This is my blog. I've written %d posts so far.</p>
<h3>Latest posts</h3>
<ul>`, esc(v.cfg.Name), sb.TotalPosts); err != nil {
			return err
		}
		for _, p := range sb.Latest {
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, p.Path(), esc(p.Title)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>
<h3>Most commented posts</h3>
<ul>`); err != nil {
			return err
		}
		for _, p := range sb.MostCommented {
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, p.Path(), esc(p.Title)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>
</aside>`)
		return err
	})
}

// postCard renders one entry in a post listing.
func postCard(w io.Writer, p pressroom.Post) error {
	if _, err := fmt.Fprintf(w, `<article class="post-card">
<h2><a href="%s">%s</a></h2>
<p class="meta">Published %s by %s</p>
<p class="tags">`,
		p.Path(), esc(p.Title), p.Publish.Format("Jan 2, 2006"), esc(p.Author)); err != nil {
		return err
	}
	for _, t := range p.Tags {
		if _, err := fmt.Fprintf(w, `<a class="tag" href="/tag/%s/">%s</a> `, url.PathEscape(t), esc(t)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `</p>
<p>%s</p>
</article>`, esc(truncateWords(p.Body, 30)))
	return err
}

// truncateWords cuts body text to the first n words for list previews.
func truncateWords(s string, n int) string {
	count := 0
	for i, r := range s {
		if r == ' ' || r == '\n' {
			count++
			if count >= n {
				return s[:i] + "…"
			}
		}
	}
	return s
}

func fieldError(w io.Writer, errs map[string]string, field string) error {
	if msg, ok := errs[field]; ok {
		_, err := fmt.Fprintf(w, `<p class="field-error">%s</p>`, esc(msg))
		return err
	}
	return nil
}

func csrfInput(w io.Writer, token string) error {
	_, err := fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(token))
	return err
}
