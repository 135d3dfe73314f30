// Package pressroom is a blog publishing application built with Go, Echo,
// and templ. It provides draft/published posts, tag browsing, paginated
// lists, title search, reader comments, share-by-email, RSS, sitemap, and
// a session-authenticated admin.
//
// Users provide their own templ components via the ViewFuncs struct and
// pressroom handles handler logic, middleware, and database operations.
package pressroom

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/westeastdesigns/pressroom/stats"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	List           func(page Page, activeTag string, sb Sidebar) templ.Component
	Detail         func(post Post, comments []Comment, similar []Post, form CommentForm, errs map[string]string, sb Sidebar, csrfToken string) templ.Component
	CommentResult  func(post Post, comment *Comment, form CommentForm, errs map[string]string, csrfToken string) templ.Component
	Share          func(post Post, form ShareForm, errs map[string]string, sent bool, csrfToken string) templ.Component
	Search         func(form SearchForm, results []Post, performed bool, sb Sidebar) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []Post, viewTotals map[int64]int, message string, csrfToken string) templ.Component
	AdminForm      func(post Post, comments []Comment, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central pressroom application. It wires together the store,
// cache, mailer, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Mailer Mailer
	Stats  *stats.Store

	loginLimiter  *RateLimiter
	submitLimiter *RateLimiter
	customRoutes  []func(*App)
	staticDir     string
	statsDone     chan struct{}
}

// New creates a new pressroom App with the given configuration and view
// functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:        cfg,
		Echo:          echo.New(),
		Views:         views,
		staticDir:     "public",
		loginLimiter:  NewRateLimiter(5, time.Minute),
		submitLimiter: NewRateLimiter(10, time.Minute),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, mailer, middleware, routes, and
// starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("pressroom: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pressroom: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pressroom: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if a.Mailer == nil {
		if a.Config.SMTPHost == "" {
			a.Mailer = LogMailer{}
		} else {
			mailer, err := NewSMTPMailer(a.Config)
			if err != nil {
				return err
			}
			a.Mailer = mailer
		}
	}

	if a.Config.StatsEnabled {
		statsStore, err := stats.NewStore(a.Config.StatsDatabasePath)
		if err != nil {
			return fmt.Errorf("pressroom: init stats: %w", err)
		}
		a.Stats = statsStore
		a.statsDone = make(chan struct{})
		go a.pruneStats(24 * time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Machine surfaces
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public routes
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleList)
	e.GET("/tag/:tag/", a.handleList)
	e.GET("/search/", a.handleSearch)
	e.GET("/blog/:year/:month/:day/:slug/", a.handleDetail)
	e.POST("/blog/:id/comment/", a.handleComment)
	e.GET("/blog/:id/share/", a.handleSharePage)
	e.POST("/blog/:id/share/", a.handleShareSubmit)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:id/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/comment/:id/deactivate/", a.handleAdminCommentDeactivate)
	e.POST("/admin/post/:id/delete/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)
}

const statsRetentionDays = 365

// pruneStats trims per-day view rows to the retention window on every tick
// until Close.
func (a *App) pruneStats(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := a.Stats.Prune(statsRetentionDays); err != nil {
				log.Warn().Err(err).Msg("prune stats")
			}
		case <-a.statsDone:
			return
		}
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.statsDone != nil {
		close(a.statsDone)
		a.statsDone = nil
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Stats != nil {
		a.Stats.Close()
	}
	return nil
}
