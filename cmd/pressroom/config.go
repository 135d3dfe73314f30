package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

type config struct {
	Listen          string        `env:"LISTEN" envDefault:":3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFmt          string        `env:"LOG_FMT" envDefault:"console"`
	SiteName        string        `env:"SITE_NAME" envDefault:"Blog"`
	SiteURL         string        `env:"SITE_URL" envDefault:"http://localhost:3000"`
	SiteDescription string        `env:"SITE_DESCRIPTION"`
	SiteAuthor      string        `env:"SITE_AUTHOR"`
	DatabasePath    string        `env:"DB_PATH" envDefault:"data/blog.db"`
	StatsEnabled    bool          `env:"STATS_ENABLED" envDefault:"true"`
	StatsDBPath     string        `env:"STATS_DB_PATH" envDefault:"data/stats.db"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	SessionSecret   string        `env:"SESSION_SECRET"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"public"`
	PageSize        int           `env:"PAGE_SIZE" envDefault:"3"`
	PostCacheTTL    time.Duration `env:"POST_CACHE_TTL" envDefault:"5m"`
	SMTPHost        string        `env:"SMTP_HOST"`
	SMTPPort        int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser        string        `env:"SMTP_USER"`
	SMTPPassword    string        `env:"SMTP_PASSWORD"`
	MailFrom        string        `env:"MAIL_FROM" envDefault:"noreply@localhost"`
}

func initConfig() (*config, error) {
	cfg := &config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
