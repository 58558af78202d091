package folio

import "time"

// Post is a single blog article record. Records are authored as markdown
// files with JSON frontmatter and loaded into an immutable snapshot at
// startup; nothing mutates a Post after load.
type Post struct {
	ID         string   `json:"id"`
	BlogID     int      `json:"blogId"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Images     []string `json:"images,omitempty"`
	Author     Author   `json:"author"`

	PublishedAt time.Time  `json:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`

	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	ReadTime int      `json:"readTime"` // minutes

	Featured  bool `json:"featured"`
	Published bool `json:"published"`

	// ExternalLinks maps a platform name (github, linkedin, medium, npm,
	// website, ...) to a URL. The key set is open-ended.
	ExternalLinks map[string]string `json:"externalLinks,omitempty"`
	SEO           *SEO              `json:"seo,omitempty"`
}

// Author attributes a post. Always present on a well-formed record.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// SEO holds optional per-post overrides for meta tags.
type SEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Category is static display metadata referenced by Post.Category. A post
// whose category has no matching entry is tolerated; consumers fall back
// to rendering no badge.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// Image describes a processed cover image upload.
type Image struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Size         int64     `json:"size,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt,omitempty"`
}
