package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	Category    string `xml:"category,omitempty"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// handleFeed serves the RSS 2.0 feed of published posts, newest first.
func (a *App) handleFeed(c echo.Context) error {
	posts := a.Store.Posts()

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := BuildURL(a.Config.URL, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Author:      p.Author.Name,
			Category:    p.Category,
			GUID:        link,
			PubDate:     p.PublishedAt.Format(time.RFC1123Z),
		})
	}

	lastBuild := time.Now()
	if len(posts) > 0 {
		lastBuild = posts[0].PublishedAt
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         a.Config.Name,
			Link:          a.Config.URL,
			Description:   a.Config.Description,
			Language:      "en-us",
			LastBuildDate: lastBuild.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8",
		append([]byte(xml.Header), out...))
}
