package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/westeastdesigns/pressroom"
)

// List renders the paginated post listing, optionally scoped to a tag.
func (v *Views) List(page pressroom.Page, activeTag string, sb pressroom.Sidebar) templ.Component {
	title := "My Blog"
	if activeTag != "" {
		title = "Posts tagged with \"" + activeTag + "\""
	}
	body := component(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, esc(title)); err != nil {
			return err
		}
		for _, p := range page.Posts {
			if err := postCard(w, p); err != nil {
				return err
			}
		}
		if len(page.Posts) == 0 {
			if _, err := io.WriteString(w, `<p>There are no posts yet.</p>`); err != nil {
				return err
			}
		}
		return pagination(w, page, listBasePath(activeTag))
	})
	return v.page(title, &sb, body)
}

func listBasePath(activeTag string) string {
	if activeTag == "" {
		return "/"
	}
	return "/tag/" + url.PathEscape(activeTag) + "/"
}

func pagination(w io.Writer, page pressroom.Page, basePath string) error {
	if page.NumPages <= 1 {
		return nil
	}
	if _, err := io.WriteString(w, `<nav class="pagination">`); err != nil {
		return err
	}
	if page.HasPrev() {
		if _, err := fmt.Fprintf(w, `<a href="%s?page=%d">Previous</a> `, basePath, page.PrevNumber()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, `<span class="current">Page %d of %d</span>`, page.Number, page.NumPages); err != nil {
		return err
	}
	if page.HasNext() {
		if _, err := fmt.Fprintf(w, ` <a href="%s?page=%d">Next</a>`, basePath, page.NextNumber()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav>`)
	return err
}

// Detail renders a single post with its comments, the comment form, and
// similar posts.
func (v *Views) Detail(post pressroom.Post, comments []pressroom.Comment, similar []pressroom.Post, form pressroom.CommentForm, errs map[string]string, sb pressroom.Sidebar, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article class="post">
<h1>%s</h1>
<p class="meta">Published %s by %s</p>
<div class="body">`, esc(post.Title), post.Publish.Format("Jan 2, 2006"), esc(post.Author)); err != nil {
			return err
		}
		if err := Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `</div>
<p><a href="/blog/%d/share/">Share this post</a></p>
</article>`, post.ID); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="similar"><h2>Similar posts</h2>`); err != nil {
			return err
		}
		if len(similar) == 0 {
			if _, err := io.WriteString(w, `<p>There are no similar posts yet.</p>`); err != nil {
				return err
			}
		}
		for _, p := range similar {
			if _, err := fmt.Fprintf(w, `<p><a href="%s">%s</a></p>`, p.Path(), esc(p.Title)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if err := renderComments(w, comments); err != nil {
			return err
		}
		return commentForm(w, post, form, errs, csrfToken)
	})
	return v.page(post.Title, &sb, body)
}

func renderComments(w io.Writer, comments []pressroom.Comment) error {
	if _, err := fmt.Fprintf(w, `<section class="comments"><h2>%s</h2>`, commentHeading(len(comments))); err != nil {
		return err
	}
	if len(comments) == 0 {
		if _, err := io.WriteString(w, `<p>There are no comments.</p>`); err != nil {
			return err
		}
	}
	for i, c := range comments {
		if _, err := fmt.Fprintf(w, `<div class="comment">
<p class="info">Comment %d by %s, %s</p>
<p>%s</p>
</div>`, i+1, esc(c.Name), c.Created.Format("Jan 2, 2006 15:04"), esc(c.Body)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func commentHeading(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", n)
}

func commentForm(w io.Writer, post pressroom.Post, form pressroom.CommentForm, errs map[string]string, csrfToken string) error {
	if _, err := fmt.Fprintf(w, `<section class="comment-form">
<h2>Add a new comment</h2>
<form method="post" action="/blog/%d/comment/">`, post.ID); err != nil {
		return err
	}
	if err := csrfInput(w, csrfToken); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `
<label>Name <input type="text" name="name" value="%s"></label>`, esc(form.Name)); err != nil {
		return err
	}
	if err := fieldError(w, errs, "Name"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `
<label>Email <input type="email" name="email" value="%s"></label>`, esc(form.Email)); err != nil {
		return err
	}
	if err := fieldError(w, errs, "Email"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `
<label>Body <textarea name="body">%s</textarea></label>`, esc(form.Body)); err != nil {
		return err
	}
	if err := fieldError(w, errs, "Body"); err != nil {
		return err
	}
	_, err := io.WriteString(w, `
<button type="submit">Add comment</button>
</form>
</section>`)
	return err
}

// CommentResult renders the confirmation page after a comment submission,
// or the form again when validation failed.
func (v *Views) CommentResult(post pressroom.Post, comment *pressroom.Comment, form pressroom.CommentForm, errs map[string]string, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if comment != nil {
			_, err := fmt.Fprintf(w, `<h1>Your comment has been added.</h1>
<p><a href="%s">Back to the post</a></p>`, post.Path())
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>Add a comment to "%s"</h1>`, esc(post.Title)); err != nil {
			return err
		}
		return commentForm(w, post, form, errs, csrfToken)
	})
	return v.page("Add a comment", nil, body)
}

// Share renders the recommend-by-email form, its validation errors, and
// the sent confirmation.
func (v *Views) Share(post pressroom.Post, form pressroom.ShareForm, errs map[string]string, sent bool, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if sent {
			_, err := fmt.Fprintf(w, `<h1>E-mail successfully sent</h1>
<p>"%s" was successfully sent to %s.</p>
<p><a href="%s">Back to the post</a></p>`, esc(post.Title), esc(form.To), post.Path())
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>Share "%s" by e-mail</h1>
<form method="post" action="/blog/%d/share/">`, esc(post.Title), post.ID); err != nil {
			return err
		}
		if err := csrfInput(w, csrfToken); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `
<label>Name <input type="text" name="name" value="%s"></label>`, esc(form.Name)); err != nil {
			return err
		}
		if err := fieldError(w, errs, "Name"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `
<label>Email <input type="email" name="email" value="%s"></label>`, esc(form.Email)); err != nil {
			return err
		}
		if err := fieldError(w, errs, "Email"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `
<label>To <input type="email" name="to" value="%s"></label>`, esc(form.To)); err != nil {
			return err
		}
		if err := fieldError(w, errs, "To"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `
<label>Comments <textarea name="comments">%s</textarea></label>`, esc(form.Comments)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
<button type="submit">Send e-mail</button>
</form>`)
		return err
	})
	return v.page("Share a post", nil, body)
}

// Search renders the search form and, after a query, the ranked results.
func (v *Views) Search(form pressroom.SearchForm, results []pressroom.Post, performed bool, sb pressroom.Sidebar) templ.Component {
	body := component(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Search</h1>
<form method="get" action="/search/">
<label>Query <input type="text" name="query" value="%s"></label>
<button type="submit">Search</button>
</form>`, esc(form.Query)); err != nil {
			return err
		}
		if !performed {
			return nil
		}
		if _, err := fmt.Fprintf(w, `<h2>Posts containing "%s"</h2>`, esc(form.Query)); err != nil {
			return err
		}
		if len(results) == 0 {
			_, err := io.WriteString(w, `<p>There are no results for your query.</p>`)
			return err
		}
		if _, err := fmt.Fprintf(w, `<p class="result-count">Found %d result(s)</p>`, len(results)); err != nil {
			return err
		}
		for _, p := range results {
			if err := postCard(w, p); err != nil {
				return err
			}
		}
		return nil
	})
	return v.page("Search", &sb, body)
}
