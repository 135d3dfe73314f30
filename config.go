package pressroom

import "time"

// SiteConfig holds all configuration for a pressroom site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default author name for new posts

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	StatsEnabled      bool   // Record per-post view counts
	StatsDatabasePath string // Stats SQLite path (default "data/stats.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PageSize     int           // Posts per list page (default 3)
	PostCacheTTL time.Duration // Post cache TTL (default 5min)

	// SMTP settings for the share-by-email feature. With an empty host,
	// share emails are logged instead of sent.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string // From address on share emails
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StatsDatabasePath == "" {
		c.StatsDatabasePath = "data/stats.db"
	}
	if c.PageSize == 0 {
		c.PageSize = 3
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.MailFrom == "" {
		c.MailFrom = "noreply@localhost"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithMailer overrides the share email sender.
func WithMailer(m Mailer) Option {
	return func(a *App) {
		a.Mailer = m
	}
}
