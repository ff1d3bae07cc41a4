package inkpress

import "time"

// SiteConfig holds all configuration for an inkpress site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default author name for JSON-LD and the feed
	Language    string // Feed language (default "en")

	Addr       string // Listen address (default ":3000")
	ContentDir string // Directory holding <slug>.md post files (default "content/posts")

	AdminPassword string // Required: admin login password
	AdminToken    string // Required: pre-shared bearer token set in the admin cookie
	CookieSecure  bool   // Set true for HTTPS

	AnalyticsEnabled      bool   // Enable pageview analytics
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	WatchContent bool          // Watch ContentDir and invalidate the cache on changes
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
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
