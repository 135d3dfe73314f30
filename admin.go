package pressroom

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	comments, err := a.Store.ActiveComments(post.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminForm(post, comments, CsrfToken(c)))
}

func (a *App) handleAdminCommentDeactivate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.DeactivateComment(id); err != nil {
		return err
	}
	// hidden comments drop out of the cached counts
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=Comment+hidden.")
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	var id int64
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+post+id.")
		}
		id = parsed
	}

	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}

	publish := time.Now().UTC()
	if date := strings.TrimSpace(c.FormValue("publish")); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
		}
		publish = parsed
	}

	author := strings.TrimSpace(c.FormValue("author"))
	if author == "" {
		author = a.Config.Author
	}

	status := StatusDraft
	if c.FormValue("published") != "" {
		status = StatusPublished
	}

	post := Post{
		ID:      id,
		Title:   title,
		Slug:    slug,
		Author:  author,
		Body:    c.FormValue("body"),
		Publish: publish,
		Status:  status,
		Tags:    FilterEmpty(strings.Split(c.FormValue("tags"), ",")),
	}
	if id != 0 {
		existing, err := a.Store.GetPost(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.Redirect(http.StatusSeeOther, "/admin/?msg=No+such+post.")
			}
			return err
		}
		post.Created = existing.Created
	}
	if err := a.Store.SavePost(&post); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+already+used+on+that+publish+day.")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+saved.")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+deleted.")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	views := map[int64]int{}
	if a.Stats != nil {
		if views, err = a.Stats.Totals(); err != nil {
			return err
		}
	}
	return Render(c, a.Views.AdminDashboard(posts, views, msg, CsrfToken(c)))
}
