package folio

import (
	"io/fs"
	"log"
	"os"

	"go.uber.org/zap"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Folio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and JSON-LD
	Author      string // Author name for JSON-LD and scaffolded posts

	Addr string // Listen address (default ":3000")

	AnalyticsEnabled      bool   // Enable page-view analytics
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required when serving: admin login password
	SessionSecret string // Required when serving: session encryption secret
	CookieSecure  bool   // Set true behind HTTPS

	LogLevel  string // zap level (default "info")
	LogFormat string // "json" or "console" (default "json")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Folio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger injects a prebuilt logger instead of building one from
// SiteConfig's level and format.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithContentSource overrides the embedded post collection with an explicit
// filesystem and source list. This is the seam tests and alternative
// deployments hang off; there is no directory-scanning magic behind it.
func WithContentSource(fsys fs.FS, paths []string) Option {
	return func(a *App) {
		a.contentFS = fsys
		a.contentPaths = paths
	}
}

// WithCategories replaces the default category registry.
func WithCategories(categories []Category) Option {
	return func(a *App) {
		a.categories = categories
	}
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
