package folio

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My New Post!", "my-new-post"},
		{"Hello, World", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"C++ & Go: A Story", "c-go-a-story"},
		{"---", ""},
		{"", ""},
		{"ÜBER cool", "ber-cool"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"My New Post!", "Hello, World", "plain"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent on %q: %q -> %q", in, once, twice)
		}
	}
}

func TestReadTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	cases := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"short", 1},
		{words(200), 1},
		{words(201), 2},
		{words(1000), 5},
	}
	for _, tc := range cases {
		if got := ReadTime(tc.content); got != tc.want {
			t.Errorf("ReadTime(%d words) = %d, want %d", len(strings.Fields(tc.content)), got, tc.want)
		}
	}
}

func validPost() Post {
	return Post{
		ID:         "ok",
		Title:      "A Title",
		Content:    "Some content.",
		Excerpt:    "An excerpt.",
		CoverImage: "/images/cover.jpg",
		Tags:       []string{"go"},
		Category:   "personal",
		ReadTime:   2,
	}
}

func TestValidatePostWellFormed(t *testing.T) {
	if errs := ValidatePost(validPost()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidatePostMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Post)
		want   string
	}{
		{"title", func(p *Post) { p.Title = "  " }, "Title is required"},
		{"content", func(p *Post) { p.Content = "" }, "Content is required"},
		{"excerpt", func(p *Post) { p.Excerpt = "" }, "Excerpt is required"},
		{"cover", func(p *Post) { p.CoverImage = "" }, "Cover image is required"},
		{"tags", func(p *Post) { p.Tags = []string{" ", ""} }, "At least one tag is required"},
		{"category", func(p *Post) { p.Category = "" }, "Category is required"},
		{"readTime", func(p *Post) { p.ReadTime = -1 }, "Read time must be at least 1 minute"},
	}
	for _, tc := range cases {
		p := validPost()
		tc.mutate(&p)
		errs := ValidatePost(p)
		if len(errs) != 1 || errs[0] != tc.want {
			t.Errorf("%s: got %v, want exactly [%q]", tc.name, errs, tc.want)
		}
	}
}

func TestValidatePostCollectsAll(t *testing.T) {
	errs := ValidatePost(Post{})
	// Every required field is missing; the zero read time is not an error.
	if len(errs) != 6 {
		t.Errorf("got %d errors, want 6: %v", len(errs), errs)
	}
}

func TestExtractExcerpt(t *testing.T) {
	content := "# Heading\n\nThis is **bold** and `code` with a [link](https://example.com)."
	got := ExtractExcerpt(content, DefaultExcerptLength)
	for _, forbidden := range []string{"#", "*", "`", "[", "]", "(", ")"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("excerpt still contains %q: %q", forbidden, got)
		}
	}
	if strings.Contains(got, "\n") {
		t.Errorf("excerpt contains a newline: %q", got)
	}
}

func TestExtractExcerptTruncates(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 50)
	got := ExtractExcerpt(long, 160)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated excerpt should end with ellipsis: %q", got)
	}
	if n := len([]rune(got)); n > 163 {
		t.Errorf("excerpt too long: %d runes", n)
	}

	short := "Short and sweet."
	if got := ExtractExcerpt(short, 160); got != short {
		t.Errorf("short content should pass through, got %q", got)
	}
}

func TestComposePost(t *testing.T) {
	p := ComposePost(Post{
		ID:      "new",
		Title:   "  Brand New Post  ",
		Content: "Hello there, reader.",
	})
	if p.Slug != "brand-new-post" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Excerpt == "" {
		t.Error("excerpt not derived")
	}
	if p.ReadTime < 1 {
		t.Errorf("readTime = %d", p.ReadTime)
	}
	if p.PublishedAt.IsZero() {
		t.Error("publishedAt not defaulted")
	}
}

func TestExportMarkdownRoundTrip(t *testing.T) {
	orig := ComposePost(Post{
		ID:       "round",
		BlogID:   12,
		Title:    "Round Trip",
		Content:  "Body of the post.",
		Tags:     []string{"go", "testing"},
		Category: "software-development",
	})
	orig.Published = true

	out, err := ExportMarkdown(orig)
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	parsed, err := ParsePost([]byte(out))
	if err != nil {
		t.Fatalf("ParsePost of export: %v", err)
	}
	if parsed.ID != orig.ID || parsed.BlogID != orig.BlogID || parsed.Slug != orig.Slug {
		t.Errorf("identity changed: %+v vs %+v", parsed, orig)
	}
	if parsed.Content != orig.Content {
		t.Errorf("content changed: %q vs %q", parsed.Content, orig.Content)
	}
	if !parsed.PublishedAt.Equal(orig.PublishedAt) {
		t.Errorf("publishedAt changed: %v vs %v", parsed.PublishedAt, orig.PublishedAt)
	}
}
