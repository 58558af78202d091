package folio

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mgulumser/folio/analytics"
	"github.com/mgulumser/folio/markdown"
)

// PostSummary is the listing view of a post: everything but the body.
type PostSummary struct {
	ID          string     `json:"id"`
	BlogID      int        `json:"blogId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"coverImage"`
	Author      Author     `json:"author"`
	PublishedAt time.Time  `json:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	ReadTime    int        `json:"readTime"`
	Featured    bool       `json:"featured"`
}

func summarize(p Post) PostSummary {
	return PostSummary{
		ID:          p.ID,
		BlogID:      p.BlogID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Author:      p.Author,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
		Tags:        p.Tags,
		Category:    p.Category,
		ReadTime:    p.ReadTime,
		Featured:    p.Featured,
	}
}

func summarizeAll(posts []Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	return out
}

type postListResponse struct {
	Posts []PostSummary `json:"posts"`
	Total int           `json:"total"`
}

type postDetailResponse struct {
	Post        Post          `json:"post"`
	ContentHTML string        `json:"contentHtml"`
	Category    *Category     `json:"category,omitempty"`
	Related     []PostSummary `json:"related"`
	JSONLD      string        `json:"jsonLd"`
}

// handlePosts lists published posts. Exactly one filter applies per
// request, in priority order: q (search), category, featured, tag.
func (a *App) handlePosts(c echo.Context) error {
	var posts []Post
	switch {
	case c.QueryParam("q") != "":
		posts = a.Store.Search(c.QueryParam("q"))
	case c.QueryParam("category") != "":
		posts = a.Store.ByCategory(c.QueryParam("category"))
	case c.QueryParam("featured") == "true":
		posts = a.Store.Featured()
	case c.QueryParam("tag") != "":
		posts = a.Store.ByTag(c.QueryParam("tag"))
	default:
		posts = a.Store.Posts()
	}
	summaries := summarizeAll(posts)
	return c.JSON(http.StatusOK, postListResponse{Posts: summaries, Total: len(summaries)})
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Store.BySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	a.recordVisit(c, post)
	return c.JSON(http.StatusOK, a.postDetail(post))
}

func (a *App) handlePostByBlogID(c echo.Context) error {
	blogID, err := strconv.Atoi(c.Param("blogId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	post, err := a.Store.ByBlogID(blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	a.recordVisit(c, post)
	return c.JSON(http.StatusOK, a.postDetail(post))
}

func (a *App) handleRelated(c echo.Context) error {
	post, err := a.Store.BySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	limit := DefaultRelatedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}
	related := summarizeAll(a.Store.Related(post, limit))
	return c.JSON(http.StatusOK, postListResponse{Posts: related, Total: len(related)})
}

func (a *App) postDetail(post Post) postDetailResponse {
	resp := postDetailResponse{
		Post:        post,
		ContentHTML: markdown.Render(post.Content),
		Related:     summarizeAll(a.Store.Related(post, DefaultRelatedLimit)),
		JSONLD:      BlogPostingJSONLD(post, a.Config),
	}
	if cat, ok := a.Store.CategoryByID(post.Category); ok {
		resp.Category = &cat
	}
	return resp
}

func (a *App) handleCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": a.Store.Categories(),
	})
}

func (a *App) handleTags(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tags": a.Store.Tags(),
	})
}

func (a *App) handleProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Profile)
}

// handleProfileSection serves one slice of the portfolio record.
func (a *App) handleProfileSection(c echo.Context) error {
	switch c.Param("section") {
	case "experience":
		return c.JSON(http.StatusOK, a.Profile.Experience)
	case "education":
		return c.JSON(http.StatusOK, a.Profile.Education)
	case "projects":
		return c.JSON(http.StatusOK, a.Profile.Projects)
	case "awards":
		return c.JSON(http.StatusOK, a.Profile.Awards)
	case "research":
		return c.JSON(http.StatusOK, a.Profile.Research)
	case "skills":
		return c.JSON(http.StatusOK, a.Profile.Skills)
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown profile section")
	}
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

// recordVisit logs a page view. Analytics failures never fail the request.
func (a *App) recordVisit(c echo.Context, post Post) {
	if a.analyticsStore == nil {
		return
	}
	visit := analytics.Visit{
		Path:      "/blog/" + post.Slug,
		IPHash:    a.analyticsStore.HashIP(c.RealIP()),
		UserAgent: c.Request().UserAgent(),
		Timestamp: time.Now().UTC(),
	}
	if err := a.analyticsStore.RecordVisit(visit); err != nil {
		a.Log.Warn("record visit failed", zap.String("path", visit.Path), zap.Error(err))
	}
}
