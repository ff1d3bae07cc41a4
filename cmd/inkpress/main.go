// Command inkpress runs a file-backed markdown blog server.
// Site branding and secrets come from environment variables; operational
// knobs are flags.
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"inkpress"
)

func main() {
	var (
		addr      string
		content   string
		static    string
		debug     bool
		noWatch   bool
		analytics bool
		cacheTTL  time.Duration
	)
	flag.StringVar(&addr, "addr", ":3000", "Listen address")
	flag.StringVar(&content, "content", "content/posts", "Path to the posts directory")
	flag.StringVar(&static, "static", "public", "Path to the static assets directory")
	flag.BoolVar(&debug, "debug", false, "Sets log level to debug")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable the content watcher")
	flag.BoolVar(&analytics, "analytics", false, "Enable pageview analytics")
	flag.DurationVar(&cacheTTL, "cache-ttl", 5*time.Minute, "Post cache TTL")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := inkpress.SiteConfig{
		Name:        inkpress.EnvOr("SITE_NAME", "Blog"),
		URL:         strings.TrimSuffix(inkpress.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: inkpress.EnvOr("SITE_DESCRIPTION", ""),
		Author:      inkpress.EnvOr("SITE_AUTHOR", ""),
		Language:    inkpress.EnvOr("SITE_LANGUAGE", "en"),

		Addr:       addr,
		ContentDir: content,

		AdminPassword: inkpress.MustEnv("ADMIN_PASSWORD"),
		AdminToken:    inkpress.MustEnv("ADMIN_TOKEN"),
		CookieSecure:  strings.EqualFold(inkpress.EnvOr("COOKIE_SECURE", ""), "true"),

		AnalyticsEnabled:      analytics,
		AnalyticsDatabasePath: inkpress.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		PostCacheTTL: cacheTTL,
		WatchContent: !noWatch,
	}

	app := inkpress.New(cfg, inkpress.WithStaticDir(static))

	log.Info().Str("addr", addr).Str("content", content).Msg("starting inkpress")
	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
