// Package inkpress is a file-backed blog engine built with Go and Echo.
// Posts are markdown files with frontmatter; the engine parses, sanitizes
// and renders them, serves an RSS feed and sitemap, and provides a
// password-gated admin UI for creating new posts on disk.
package inkpress

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"inkpress/analytics"
	"inkpress/views"
)

// App is the central inkpress application. It wires together the post
// repository, cache, auth gate, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Repo   *Repo
	Cache  *postCache

	log            zerolog.Logger
	loginLimiter   *loginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
	stopWatcher    func()
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		log:       log.Logger,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the repository, cache, auth gate, middleware and routes,
// then starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkpress: AdminPassword is required")
	}
	if a.Config.AdminToken == "" {
		return fmt.Errorf("inkpress: AdminToken is required")
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("inkpress: init views: %w", err)
	}
	a.Echo.Renderer = renderer
	a.Echo.HideBanner = true

	a.Repo = NewRepo(a.Config.ContentDir, a.log)
	a.Cache = newPostCache(a.Repo, a.Config.PostCacheTTL)
	a.loginLimiter = newLoginLimiter(maxLoginAttempts, attemptWindow, lockoutDuration)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("inkpress: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("inkpress: init analytics salt: %w", err)
		}
		stopCleanup := store.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
		defer store.Close()
	}

	if a.Config.WatchContent {
		a.stopWatcher = a.startContentWatcher()
		defer a.stopWatcher()
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

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug", a.handlePost)

	// JSON API
	e.POST("/api/auth/login", a.handleLogin)
	e.POST("/api/posts", a.handleCreatePost)
	e.GET("/api/posts", a.handleListPostSlugs)

	// Admin pages behind the token guard; the login page stays reachable.
	admin := e.Group("/admin", a.requireAdmin)
	admin.GET("/", a.handleAdminDashboard)
	admin.GET("/login", a.handleAdminLoginPage)
	admin.POST("/logout", a.handleLogout)
	admin.GET("/images/", a.handleImageList)
	admin.POST("/images/upload", a.handleImageUpload)
	admin.DELETE("/images/:filename", a.handleImageDelete)

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		h := analytics.NewHandler(a.analyticsStore)
		e.POST("/api/analytics/collect", h.Collect)
		admin.GET("/analytics/", h.Summary)
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatal().Str("key", key).Msg("required environment variable is not set")
	}
	return v
}
