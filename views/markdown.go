package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders post body markdown as HTML. Post bodies come from the
// admin, so raw HTML passthrough stays disabled (goldmark's default).
func Markdown(source string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return md.Convert([]byte(source), w)
	})
}
