package views

import (
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/westeastdesigns/pressroom"
)

// AdminLogin renders the password prompt.
func (v *Views) AdminLogin(showError bool, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Admin login</h1>`); err != nil {
			return err
		}
		if showError {
			if _, err := io.WriteString(w, `<p class="field-error">Wrong password.</p>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<form method="post" action="/admin/login/">`); err != nil {
			return err
		}
		if err := csrfInput(w, csrfToken); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
<label>Password <input type="password" name="password"></label>
<button type="submit">Log in</button>
</form>`)
		return err
	})
	return v.page("Admin", nil, body)
}

// AdminDashboard lists every post, drafts included, with view totals.
func (v *Views) AdminDashboard(posts []pressroom.Post, viewTotals map[int64]int, message string, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Dashboard</h1>`); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="notice">%s</p>`, esc(message)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p><a href="/admin/images/">Images</a></p>
<form method="post" action="/admin/logout/">`); err != nil {
			return err
		}
		if err := csrfInput(w, csrfToken); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<button type="submit">Log out</button></form>
<h2>New post</h2>`); err != nil {
			return err
		}
		if err := postForm(w, pressroom.Post{}, csrfToken); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Posts</h2>
<table>
<tr><th>Title</th><th>Slug</th><th>Author</th><th>Publish</th><th>Status</th><th>Comments</th><th>Views</th><th></th></tr>`); err != nil {
			return err
		}
		for _, p := range posts {
			status := "Draft"
			if p.Published() {
				status = "Published"
			}
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/admin/post/%d/">%s</a></td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td>%d</td>
<td>%d</td>
<td><form method="post" action="/admin/post/%d/delete/">`,
				p.ID, esc(p.Title), esc(p.Slug), esc(p.Author),
				p.Publish.Format("2006-01-02"), status, p.CommentCount,
				viewTotals[p.ID], p.ID); err != nil {
				return err
			}
			if err := csrfInput(w, csrfToken); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<button type="submit" class="delete">Delete</button></form></td>
</tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
	return v.page("Admin", nil, body)
}

// AdminForm renders the edit form for an existing post, with its visible
// comments and a hide action for each.
func (v *Views) AdminForm(post pressroom.Post, comments []pressroom.Comment, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Edit "%s"</h1>`, esc(post.Title)); err != nil {
			return err
		}
		if err := postForm(w, post, csrfToken); err != nil {
			return err
		}
		if len(comments) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<h2>Comments</h2>
<ul class="comments">`); err != nil {
			return err
		}
		for _, c := range comments {
			if _, err := fmt.Fprintf(w, `<li>
<p><strong>%s</strong> (%s), %s</p>
<p>%s</p>
<form method="post" action="/admin/comment/%d/deactivate/">`,
				esc(c.Name), esc(c.Email), c.Created.Format("2006-01-02 15:04"), esc(c.Body), c.ID); err != nil {
				return err
			}
			if err := csrfInput(w, csrfToken); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<button type="submit">Hide</button></form>
</li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
	return v.page("Admin", nil, body)
}

func postForm(w io.Writer, post pressroom.Post, csrfToken string) error {
	if _, err := io.WriteString(w, `<form method="post" action="/admin/save/" class="post-form">`); err != nil {
		return err
	}
	if err := csrfInput(w, csrfToken); err != nil {
		return err
	}
	id := ""
	if post.ID != 0 {
		id = fmt.Sprintf("%d", post.ID)
	}
	publish := ""
	if !post.Publish.IsZero() {
		publish = post.Publish.Format("2006-01-02")
	}
	checked := ""
	if post.Published() {
		checked = " checked"
	}
	_, err := fmt.Fprintf(w, `
<input type="hidden" name="id" value="%s">
<label>Title <input type="text" name="title" value="%s"></label>
<label>Slug <input type="text" name="slug" value="%s" placeholder="auto from title"></label>
<label>Author <input type="text" name="author" value="%s"></label>
<label>Publish date <input type="date" name="publish" value="%s"></label>
<label>Tags <input type="text" name="tags" value="%s"></label>
<label>Body <textarea name="body" rows="16">%s</textarea></label>
<label><input type="checkbox" name="published"%s> Published</label>
<button type="submit">Save</button>
</form>`,
		id, esc(post.Title), esc(post.Slug), esc(post.Author), publish,
		esc(pressroom.JoinTags(post.Tags)), esc(post.Body), checked)
	return err
}

// AdminImages lists uploads with an upload form.
func (v *Views) AdminImages(images []pressroom.Image, csrfToken string) templ.Component {
	body := component(func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Images</h1>
<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`); err != nil {
			return err
		}
		if err := csrfInput(w, csrfToken); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `
<label>Image <input type="file" name="image" accept="image/*"></label>
<button type="submit">Upload</button>
</form>
<ul class="images">`); err != nil {
			return err
		}
		for _, img := range images {
			if _, err := fmt.Fprintf(w, `<li>
<img src="/public/uploads/%s" alt="%s" loading="lazy">
<code>/public/uploads/%s</code> (%d bytes)
<form method="post" action="/admin/images/%s/delete/">`,
				esc(img.Filename), esc(img.Filename), esc(img.Filename), img.Size, url.PathEscape(img.Filename)); err != nil {
				return err
			}
			if err := csrfInput(w, csrfToken); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<button type="submit" class="delete">Delete</button></form>
</li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>
<p><a href="/admin/">Back to dashboard</a></p>`)
		return err
	})
	return v.page("Admin", nil, body)
}
