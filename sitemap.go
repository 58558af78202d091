package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// handleSitemap serves the XML sitemap: the site root, the blog index,
// category pages, and every published post.
func (a *App) handleSitemap(c echo.Context) error {
	urls := []sitemapURL{
		{Loc: a.Config.URL, ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: BuildURL(a.Config.URL, "blog"), ChangeFreq: "daily", Priority: "0.9"},
	}

	for _, cat := range a.Store.Categories() {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(a.Config.URL, "blog", "category", cat.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	for _, p := range a.Store.Posts() {
		lastMod := p.PublishedAt
		if p.UpdatedAt != nil {
			lastMod = *p.UpdatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(a.Config.URL, "blog", p.Slug),
			LastMod:    lastMod.Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8",
		append([]byte(xml.Header), out...))
}
