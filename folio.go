// Package folio is a portfolio and blog content engine. Post records are
// static markdown files with JSON frontmatter, embedded at build time,
// loaded once into an immutable in-memory snapshot, and served read-only
// over a JSON API together with static profile data, an RSS feed, and a
// sitemap.
package folio

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mgulumser/folio/analytics"
	"github.com/mgulumser/folio/content"
	"github.com/mgulumser/folio/logging"
	"github.com/mgulumser/folio/profile"
)

// App is the central folio application. It wires together the content
// snapshot, the HTTP surface, analytics, and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Log     *zap.Logger
	Profile profile.Profile

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
	contentFS      fs.FS
	contentPaths   []string
	categories     []Category
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Profile:   profile.Default(),
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start loads the content snapshot, wires middleware and routes, and runs
// the server until shutdown.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup performs all startup work short of listening. Split from Start so
// tests can drive the full stack through httptest.
func (a *App) setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	if a.Log == nil {
		logger, err := logging.New(a.Config.LogLevel, a.Config.LogFormat)
		if err != nil {
			return fmt.Errorf("folio: init logger: %w", err)
		}
		a.Log = logger
	}

	if a.contentFS == nil {
		a.contentFS, a.contentPaths = content.Sources()
	}
	if a.categories == nil {
		a.categories = DefaultCategories()
	}

	// The snapshot is loaded eagerly, exactly once. Per-record problems
	// were already warned about and skipped inside LoadPosts; an error
	// here means the content source is unavailable outright.
	posts, err := LoadPosts(a.contentFS, a.contentPaths, a.Log)
	if err != nil {
		return fmt.Errorf("folio: load posts: %w", err)
	}
	a.Store = NewStore(posts, a.categories)
	a.Log.Info("content snapshot loaded",
		zap.Int("posts", len(posts)),
		zap.Int("categories", len(a.categories)))

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init analytics: %w", err)
		}
		if err := store.InitSalt(); err != nil {
			return fmt.Errorf("folio: init analytics salt: %w", err)
		}
		a.analyticsStore = store
	}

	a.loginLimiter = NewLoginLimiter(5, loginWindow)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	api := e.Group("/api")
	api.GET("/posts", a.handlePosts)
	api.GET("/posts/id/:blogId", a.handlePostByBlogID)
	api.GET("/posts/:slug", a.handlePost)
	api.GET("/posts/:slug/related", a.handleRelated)
	api.GET("/categories", a.handleCategories)
	api.GET("/tags", a.handleTags)
	api.GET("/profile", a.handleProfile)
	api.GET("/profile/:section", a.handleProfileSection)

	// Admin surface: draft preview and authoring support live behind the
	// session; the public retrieval path never sees drafts.
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", a.handleAdminLogout)
	e.GET("/admin/posts", a.handleAdminPosts)
	e.GET("/admin/posts/:slug", a.handleAdminPost)
	e.GET("/admin/validate", a.handleAdminValidate)
	e.GET("/admin/stats", a.handleAdminStats)
	e.GET("/admin/images", a.handleImageList)
	e.POST("/admin/images", a.handleImageUpload)
	e.DELETE("/admin/images/:filename", a.handleImageDelete)
}

// Close cleans up resources on shutdown.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}
