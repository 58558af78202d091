package folio

import (
	"fmt"
	"strings"
	"time"
)

// Authoring-time utilities: everything here supports the scaffolding CLI
// and editorial tooling, independent of the retrieval path.

const (
	// wordsPerMinute is the reading speed assumed by ReadTime.
	wordsPerMinute = 200

	// DefaultExcerptLength caps generated excerpts, in runes.
	DefaultExcerptLength = 160
)

// ReadTime estimates reading time in whole minutes, rounding up, never
// below one minute.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ValidatePost reports every authoring problem with a post as a list of
// human-readable messages. It is a reporting function, not a gate: it never
// fails, and each independently-missing field contributes exactly one entry.
func ValidatePost(p Post) []string {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		errs = append(errs, "Content is required")
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		errs = append(errs, "Excerpt is required")
	}
	if strings.TrimSpace(p.CoverImage) == "" {
		errs = append(errs, "Cover image is required")
	}
	if len(FilterEmpty(p.Tags)) == 0 {
		errs = append(errs, "At least one tag is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, "Category is required")
	}
	if p.ReadTime < 0 {
		errs = append(errs, "Read time must be at least 1 minute")
	}
	return errs
}

// excerptStrip holds the markup punctuation removed before excerpting.
const excerptStrip = "#*`_~[]()"

// ExtractExcerpt produces a plain-text summary from a markdown body:
// markup punctuation stripped, whitespace collapsed, truncated to maxLen
// runes with a trailing ellipsis when cut short.
func ExtractExcerpt(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}
	plain := strings.Map(func(r rune) rune {
		if strings.ContainsRune(excerptStrip, r) {
			return -1
		}
		return r
	}, content)
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}

// ComposePost fills in the derivable fields of a new post record: slug from
// title, excerpt from body, read time from word count, publication time
// defaulting to now. Explicitly set fields win.
func ComposePost(p Post) Post {
	p.Title = strings.TrimSpace(p.Title)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Excerpt == "" {
		p.Excerpt = ExtractExcerpt(p.Content, DefaultExcerptLength)
	}
	if p.ReadTime < 1 {
		p.ReadTime = ReadTime(p.Content)
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = time.Now().UTC().Truncate(time.Second)
	}
	return p
}

// ExportMarkdown renders a post back into its source form: an indented JSON
// frontmatter block between "---" fences, followed by the markdown body.
func ExportMarkdown(p Post) (string, error) {
	fm := frontmatter{
		ID:            p.ID,
		BlogID:        p.BlogID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		CoverImage:    p.CoverImage,
		Images:        p.Images,
		Author:        p.Author,
		PublishedAt:   p.PublishedAt.Format(time.RFC3339),
		Tags:          p.Tags,
		Category:      p.Category,
		ReadTime:      p.ReadTime,
		Featured:      p.Featured,
		Published:     p.Published,
		ExternalLinks: p.ExternalLinks,
		SEO:           p.SEO,
	}
	if p.UpdatedAt != nil {
		fm.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	meta, err := json.MarshalIndent(fm, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	return frontmatterDelim + "\n" + string(meta) + "\n" + frontmatterDelim + "\n\n" + p.Content + "\n", nil
}
