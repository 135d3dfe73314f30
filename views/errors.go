package views

import (
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page.
func (v *Views) NotFound() templ.Component {
	body := component(func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Page not found</h1>
<p>The page you are looking for does not exist or is not published.</p>
<p><a href="/">Back to the blog</a></p>`)
		return err
	})
	return v.page("Not found", nil, body)
}

// ServerError renders the 500 page.
func (v *Views) ServerError() templ.Component {
	body := component(func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Something went wrong</h1>
<p>An unexpected error occurred. Please try again later.</p>`)
		return err
	})
	return v.page("Server error", nil, body)
}
