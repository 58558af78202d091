package folio

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loginRequest struct {
	Password string `json:"password"`
}

// handleAdminLogin authenticates the admin. Attempts are rate limited per
// IP and the password comparison is constant time.
func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		a.Log.Warn("login rate limited", zap.String("ip", ip))
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		a.Log.Warn("login failed", zap.String("ip", ip))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
	}

	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminPosts lists every post, drafts included.
func (a *App) handleAdminPosts(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	posts := a.Store.AllPosts()
	summaries := summarizeAll(posts)
	return c.JSON(http.StatusOK, postListResponse{Posts: summaries, Total: len(summaries)})
}

// handleAdminPost previews a single post by slug regardless of its
// published flag.
func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	post, err := a.Store.AnyBySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, a.postDetail(post))
}

type validationEntry struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Published bool     `json:"published"`
	Errors    []string `json:"errors"`
}

// handleAdminValidate runs field validation over every loaded post and
// reports the ones with problems.
func (a *App) handleAdminValidate(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var report []validationEntry
	for _, p := range a.Store.AllPosts() {
		if errs := ValidatePost(p); len(errs) > 0 {
			report = append(report, validationEntry{
				Slug:      p.Slug,
				Title:     p.Title,
				Published: p.Published,
				Errors:    errs,
			})
		}
	}
	if report == nil {
		report = []validationEntry{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"checked": len(a.Store.AllPosts()),
		"invalid": report,
	})
}

// handleAdminStats returns visit totals and the most viewed paths for the
// last 30 days.
func (a *App) handleAdminStats(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if a.analyticsStore == nil {
		return echo.NewHTTPError(http.StatusNotFound, "analytics disabled")
	}
	stats, err := a.analyticsStore.Stats()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
