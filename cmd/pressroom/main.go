package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xlab/closer"

	"github.com/westeastdesigns/pressroom"
	"github.com/westeastdesigns/pressroom/views"
)

func main() {
	defer closer.Close()

	closer.Bind(func() {
		log.Info().Msg("shutdown")
	})

	cfg, err := initConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("can't init config")
	}

	if err := initLogger(cfg); err != nil {
		log.Fatal().Err(err).Msg("can't init logger")
	}

	siteCfg := siteConfig(cfg)
	app := pressroom.New(siteCfg, views.Funcs(siteCfg),
		pressroom.WithStaticDir(cfg.StaticDir))
	closer.Bind(func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("can't close app")
		}
	})

	log.Info().Str("addr", cfg.Listen).Str("site", cfg.SiteURL).Msg("starting")
	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("can't start app")
	}
}

func initLogger(c *config) error {
	logLvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(logLvl)
	switch c.LogFmt {
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	case "json":
	default:
		return fmt.Errorf("unknown output format %s", c.LogFmt)
	}
	return nil
}

func siteConfig(c *config) pressroom.SiteConfig {
	return pressroom.SiteConfig{
		Name:              c.SiteName,
		URL:               c.SiteURL,
		Description:       c.SiteDescription,
		Author:            c.SiteAuthor,
		Addr:              c.Listen,
		DatabasePath:      c.DatabasePath,
		StatsEnabled:      c.StatsEnabled,
		StatsDatabasePath: c.StatsDBPath,
		AdminPassword:     c.AdminPassword,
		SessionSecret:     c.SessionSecret,
		CookieSecure:      c.CookieSecure,
		PageSize:          c.PageSize,
		PostCacheTTL:      c.PostCacheTTL,
		SMTPHost:          c.SMTPHost,
		SMTPPort:          c.SMTPPort,
		SMTPUser:          c.SMTPUser,
		SMTPPassword:      c.SMTPPassword,
		MailFrom:          c.MailFrom,
	}
}
