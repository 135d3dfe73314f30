package pressroom

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminTestApp(t *testing.T) *App {
	t.Helper()
	a, _ := newTestApp(t)
	a.Config.AdminPassword = "hunter2"
	a.Config.SessionSecret = "0123456789abcdef0123456789abcdef"
	return a
}

// runWithSession invokes a handler behind the cookie-session middleware, the
// way it runs in the real chain.
func runWithSession(a *App, h echo.HandlerFunc, c echo.Context) error {
	return session.Middleware(a.newSessionStore())(h)(c)
}

// loginAdmin performs a successful login and returns the session cookies for
// follow-up requests.
func loginAdmin(t *testing.T, a *App) []*http.Cookie {
	t.Helper()
	rec, c := doForm(a, "/admin/login/", url.Values{"password": {a.Config.AdminPassword}})
	require.NoError(t, runWithSession(a, a.handleAdminLogin, c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get(echo.HeaderLocation))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "login sets the session cookie")
	return cookies
}

func addCookies(c echo.Context, cookies []*http.Cookie) {
	for _, ck := range cookies {
		c.Request().AddCookie(ck)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	a := newAdminTestApp(t)

	rec, c := doForm(a, "/admin/login/", url.Values{"password": {"wrong"}})
	require.NoError(t, runWithSession(a, a.handleAdminLogin, c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin login error=true")
	assert.Empty(t, rec.Result().Cookies(), "no session on a failed login")
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newAdminTestApp(t)
	a.loginLimiter = NewRateLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		_, c := doForm(a, "/admin/login/", url.Values{"password": {"wrong"}})
		require.NoError(t, runWithSession(a, a.handleAdminLogin, c))
	}
	rec, c := doForm(a, "/admin/login/", url.Values{"password": {a.Config.AdminPassword}})
	require.NoError(t, runWithSession(a, a.handleAdminLogin, c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "even the right password is blocked past the limit")
}

func TestAdminDashboardRequiresSession(t *testing.T) {
	a := newAdminTestApp(t)

	rec, c := doGET(a, "/admin/")
	require.NoError(t, runWithSession(a, a.handleAdmin, c))
	assert.Contains(t, rec.Body.String(), "admin login error=false")

	cookies := loginAdmin(t, a)
	rec, c = doGET(a, "/admin/")
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdmin, c))
	assert.Contains(t, rec.Body.String(), "dashboard posts=0")
}

func TestAdminSaveRequiresSession(t *testing.T) {
	a := newAdminTestApp(t)

	rec, c := doForm(a, "/admin/save/", url.Values{"title": {"Sneaky"}})
	require.NoError(t, runWithSession(a, a.handleAdminSave, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/", rec.Header().Get(echo.HeaderLocation))

	posts, err := a.Store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, posts, "nothing is saved without a session")
}

func TestAdminSaveNewPost(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)

	// warm the cache so the save has something to invalidate
	warm, err := a.Cache.Posts("")
	require.NoError(t, err)
	require.Empty(t, warm)

	form := url.Values{
		"title":     {"My New Post"},
		"body":      {"Hello."},
		"tags":      {"Go, Web"},
		"publish":   {"2026-08-30"},
		"published": {"on"},
	}
	rec, c := doForm(a, "/admin/save/", form)
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminSave, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code, "save redirects instead of rendering the POST response")
	assert.Equal(t, "/admin/?msg=Post+saved.", rec.Header().Get(echo.HeaderLocation))

	posts, err := a.Store.ListAll()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "my-new-post", posts[0].Slug, "slug is generated from the title")
	assert.Equal(t, StatusPublished, posts[0].Status)
	assert.Equal(t, []string{"go", "web"}, posts[0].Tags)

	cached, err := a.Cache.Posts("")
	require.NoError(t, err)
	assert.Len(t, cached, 1, "save invalidates the cache")
}

func TestAdminSaveEdit(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)
	post := seedPost(t, a, "Before", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	form := url.Values{
		"id":        {fmt.Sprint(post.ID)},
		"title":     {"After"},
		"slug":      {"before"},
		"body":      {"Edited."},
		"publish":   {"2026-08-01"},
		"published": {"on"},
	}
	rec, c := doForm(a, "/admin/save/", form)
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminSave, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := a.Store.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, post.Created, got.Created, "created timestamp survives edits")

	posts, err := a.Store.ListAll()
	require.NoError(t, err)
	assert.Len(t, posts, 1, "edit does not create a second post")
}

func TestAdminSaveDuplicateSlugRedirects(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)
	seedPost(t, a, "Taken Title", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC))

	form := url.Values{
		"title":   {"Taken Title"},
		"body":    {"Clash."},
		"publish": {"2026-08-30"},
	}
	rec, c := doForm(a, "/admin/save/", form)
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminSave, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "Slug+already+used")

	posts, err := a.Store.ListAll()
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAdminDeletePost(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)
	post := seedPost(t, a, "Doomed", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))

	rec, c := doForm(a, fmt.Sprintf("/admin/post/%d/delete/", post.ID), url.Values{})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminDelete, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	posts, err := a.Store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestAdminCommentDeactivateDropsCachedCount(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)
	post := seedPost(t, a, "Moderated", time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
	comment := &Comment{PostID: post.ID, Name: "n", Email: "n@example.com", Body: "spam"}
	require.NoError(t, a.Store.AddComment(comment))
	a.Cache.Invalidate()

	cached, err := a.Cache.Posts("")
	require.NoError(t, err)
	require.Equal(t, 1, cached[0].CommentCount)

	rec, c := doForm(a, fmt.Sprintf("/admin/comment/%d/deactivate/", comment.ID), url.Values{})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(comment.ID))
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminCommentDeactivate, c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	cached, err = a.Cache.Posts("")
	require.NoError(t, err)
	assert.Zero(t, cached[0].CommentCount, "hidden comments leave the cached counts")
}

func TestAdminPostFormShowsComments(t *testing.T) {
	a := newAdminTestApp(t)
	cookies := loginAdmin(t, a)
	post := seedPost(t, a, "Edited", time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, a.Store.AddComment(&Comment{PostID: post.ID, Name: "n", Email: "n@example.com", Body: "hi"}))

	rec, c := doGET(a, fmt.Sprintf("/admin/post/%d/", post.ID))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))
	addCookies(c, cookies)
	require.NoError(t, runWithSession(a, a.handleAdminPost, c))
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("admin form post=%d comments=1", post.ID))
}

func TestProcessImageDownscales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1200, 600))))

	filename, data, err := processImage(&buf, "Holiday Photo.PNG")
	require.NoError(t, err)
	assert.Equal(t, "holiday-photo.jpg", filename)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy(), "aspect ratio is preserved")
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 400, 200))))

	_, data, err := processImage(&buf, "small.png")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestUniqueFilename(t *testing.T) {
	a := New(SiteConfig{}, ViewFuncs{}, WithStaticDir(t.TempDir()))
	require.NoError(t, os.MkdirAll(a.uploadsDir(), 0o755))

	assert.Equal(t, "photo.jpg", a.uniqueFilename("photo.jpg"))

	require.NoError(t, os.WriteFile(filepath.Join(a.uploadsDir(), "photo.jpg"), []byte("x"), 0o644))
	assert.Equal(t, "photo-2.jpg", a.uniqueFilename("photo.jpg"))
}
