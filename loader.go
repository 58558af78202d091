package folio

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const frontmatterDelim = "---"

// frontmatter is the wire form of a post record's metadata block. Dates
// travel as strings so that authors can write either full RFC 3339
// timestamps or plain YYYY-MM-DD dates.
type frontmatter struct {
	ID            string            `json:"id"`
	BlogID        int               `json:"blogId"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Excerpt       string            `json:"excerpt"`
	CoverImage    string            `json:"coverImage"`
	Images        []string          `json:"images,omitempty"`
	Author        Author            `json:"author"`
	PublishedAt   string            `json:"publishedAt"`
	UpdatedAt     string            `json:"updatedAt,omitempty"`
	Tags          []string          `json:"tags"`
	Category      string            `json:"category"`
	ReadTime      int               `json:"readTime"`
	Featured      bool              `json:"featured"`
	Published     bool              `json:"published"`
	ExternalLinks map[string]string `json:"externalLinks,omitempty"`
	SEO           *SEO              `json:"seo,omitempty"`
}

// ParsePost decodes a single post source: a JSON frontmatter block between
// "---" fences followed by a markdown body. Missing slug, excerpt, and read
// time are derived from the title and body; missing identity or content is
// an error, which callers treat as a skippable malformed record.
func ParsePost(data []byte) (Post, error) {
	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return Post{}, err
	}

	var fm frontmatter
	if err := json.Unmarshal([]byte(meta), &fm); err != nil {
		return Post{}, fmt.Errorf("frontmatter: %w", err)
	}

	body = strings.TrimSpace(body)
	if fm.ID == "" {
		return Post{}, fmt.Errorf("missing required field %q", "id")
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("missing required field %q", "title")
	}
	if body == "" {
		return Post{}, fmt.Errorf("missing required field %q", "content")
	}

	publishedAt, err := parsePostTime(fm.PublishedAt)
	if err != nil {
		return Post{}, fmt.Errorf("publishedAt: %w", err)
	}

	post := Post{
		ID:            fm.ID,
		BlogID:        fm.BlogID,
		Title:         fm.Title,
		Slug:          fm.Slug,
		Excerpt:       fm.Excerpt,
		Content:       body,
		CoverImage:    fm.CoverImage,
		Images:        fm.Images,
		Author:        fm.Author,
		PublishedAt:   publishedAt,
		Tags:          FilterEmpty(fm.Tags),
		Category:      fm.Category,
		ReadTime:      fm.ReadTime,
		Featured:      fm.Featured,
		Published:     fm.Published,
		ExternalLinks: fm.ExternalLinks,
		SEO:           fm.SEO,
	}
	if fm.UpdatedAt != "" {
		t, err := parsePostTime(fm.UpdatedAt)
		if err != nil {
			return Post{}, fmt.Errorf("updatedAt: %w", err)
		}
		post.UpdatedAt = &t
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Excerpt == "" {
		post.Excerpt = ExtractExcerpt(post.Content, DefaultExcerptLength)
	}
	if post.ReadTime < 1 {
		post.ReadTime = ReadTime(post.Content)
	}
	return post, nil
}

// LoadPosts reads every named source from fsys, skipping malformed records
// and duplicates with a logged warning, and returns the surviving posts
// sorted by publication date descending (stable on ties). It returns an
// error only when sources were given and none could be read at all.
func LoadPosts(fsys fs.FS, paths []string, log *zap.Logger) ([]Post, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		posts      []Post
		readFails  int
		seenID     = make(map[string]bool)
		seenSlug   = make(map[string]bool)
		seenBlogID = make(map[int]bool)
	)
	for _, name := range paths {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			readFails++
			log.Warn("skipping unreadable post source", zap.String("source", name), zap.Error(err))
			continue
		}
		post, err := ParsePost(data)
		if err != nil {
			log.Warn("skipping malformed post record", zap.String("source", name), zap.Error(err))
			continue
		}
		switch {
		case seenID[post.ID]:
			log.Warn("skipping post with duplicate id", zap.String("source", name), zap.String("id", post.ID))
			continue
		case seenSlug[post.Slug]:
			log.Warn("skipping post with duplicate slug", zap.String("source", name), zap.String("slug", post.Slug))
			continue
		case post.BlogID != 0 && seenBlogID[post.BlogID]:
			log.Warn("skipping post with duplicate blogId", zap.String("source", name), zap.Int("blogId", post.BlogID))
			continue
		}
		seenID[post.ID] = true
		seenSlug[post.Slug] = true
		if post.BlogID != 0 {
			seenBlogID[post.BlogID] = true
		}
		posts = append(posts, post)
	}

	if len(paths) > 0 && readFails == len(paths) {
		return nil, fmt.Errorf("no post source could be read (%d sources)", len(paths))
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

func splitFrontmatter(src string) (meta, body string, err error) {
	src = strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(src, frontmatterDelim) {
		return "", "", fmt.Errorf("missing frontmatter fence")
	}
	rest := strings.TrimPrefix(src, frontmatterDelim)
	idx := strings.Index(rest, "\n"+frontmatterDelim)
	if idx < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter fence")
	}
	meta = strings.TrimSpace(rest[:idx])
	body = rest[idx+len("\n"+frontmatterDelim):]
	body = strings.TrimPrefix(body, "\n")
	return meta, body, nil
}

// parsePostTime accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parsePostTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
