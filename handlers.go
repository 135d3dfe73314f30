package pressroom

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Sidebar carries the aggregates shown beside every public page.
type Sidebar struct {
	TotalPosts    int
	Latest        []Post
	MostCommented []Post
}

const (
	sidebarLatest        = 5
	sidebarMostCommented = 5
	similarPostLimit     = 4
)

func (a *App) sidebar() (Sidebar, error) {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return Sidebar{}, err
	}
	sb := Sidebar{TotalPosts: len(posts)}

	latest := posts
	if len(latest) > sidebarLatest {
		latest = latest[:sidebarLatest]
	}
	sb.Latest = latest

	byComments := make([]Post, len(posts))
	copy(byComments, posts)
	// posts arrive publish-desc; a stable sort keeps that as the tiebreak
	sortPostsByComments(byComments)
	if len(byComments) > sidebarMostCommented {
		byComments = byComments[:sidebarMostCommented]
	}
	sb.MostCommented = byComments
	return sb, nil
}

func (a *App) handleList(c echo.Context) error {
	tag := c.Param("tag")
	if tag != "" {
		ok, err := a.Cache.HasTag(tag)
		if err != nil {
			return err
		}
		if !ok {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
	}
	posts, err := a.Cache.Posts(tag)
	if err != nil {
		return err
	}
	page := Paginate(posts, ParsePageNumber(c.QueryParam("page")), a.Config.PageSize)
	sb, err := a.sidebar()
	if err != nil {
		return err
	}
	return Render(c, a.Views.List(page, tag, sb))
}

func (a *App) handleDetail(c echo.Context) error {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	day, err3 := strconv.Atoi(c.Param("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	post, err := a.Cache.GetByDateSlug(year, month, day, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	comments, err := a.Store.ActiveComments(post.ID)
	if err != nil {
		return err
	}
	published, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	similar := SimilarPosts(post, published, similarPostLimit)
	sb, err := a.sidebar()
	if err != nil {
		return err
	}

	if a.Stats != nil {
		if err := a.Stats.Record(post.ID); err != nil {
			log.Warn().Err(err).Int64("post", post.ID).Msg("record view")
		}
	}
	return Render(c, a.Views.Detail(post, comments, similar, CommentForm{}, nil, sb, CsrfToken(c)))
}

func (a *App) lookupPublishedByID(c echo.Context) (Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Post{}, ErrNotFound
	}
	return a.Cache.GetByID(id)
}

func (a *App) handleComment(c echo.Context) error {
	post, err := a.lookupPublishedByID(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	var form CommentForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return Render(c, a.Views.CommentResult(post, nil, form, FieldErrors(err), CsrfToken(c)))
	}
	comment := &Comment{
		PostID: post.ID,
		Name:   form.Name,
		Email:  form.Email,
		Body:   form.Body,
	}
	if err := a.Store.AddComment(comment); err != nil {
		return fmt.Errorf("pressroom: add comment: %w", err)
	}
	// comment counts are part of the cached snapshot
	a.Cache.Invalidate()
	return Render(c, a.Views.CommentResult(post, comment, form, nil, CsrfToken(c)))
}

func (a *App) handleSharePage(c echo.Context) error {
	post, err := a.lookupPublishedByID(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Share(post, ShareForm{}, nil, false, CsrfToken(c)))
}

func (a *App) handleShareSubmit(c echo.Context) error {
	post, err := a.lookupPublishedByID(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	var form ShareForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return Render(c, a.Views.Share(post, form, FieldErrors(err), false, CsrfToken(c)))
	}
	msg := BuildShareMail(form, post, AbsoluteURL(a.Config.URL, post.Path()))
	if err := a.Mailer.Send(c.Request().Context(), msg); err != nil {
		return err
	}
	log.Info().Int64("post", post.ID).Str("to", form.To).Msg("post shared")
	return Render(c, a.Views.Share(post, form, nil, true, CsrfToken(c)))
}

func (a *App) handleSearch(c echo.Context) error {
	sb, err := a.sidebar()
	if err != nil {
		return err
	}
	form := SearchForm{Query: c.QueryParam("query")}
	if form.Query == "" {
		return Render(c, a.Views.Search(form, nil, false, sb))
	}
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	results := SearchByTitle(posts, form.Query)
	return Render(c, a.Views.Search(form, results, true, sb))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func sortPostsByComments(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CommentCount > posts[j].CommentCount
	})
}
