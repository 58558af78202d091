package folio

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC)
}

// fixturePosts returns a small collection already in the order LoadPosts
// would produce: publication date descending.
func fixturePosts(t *testing.T) []Post {
	t.Helper()
	return []Post{
		{
			ID: "p4", BlogID: 4, Title: "Fourth", Slug: "fourth",
			Excerpt: "Draft about testing", PublishedAt: day(4),
			Tags: []string{"testing"}, Category: "research",
			Published: false,
		},
		{
			ID: "p3", BlogID: 3, Title: "Third", Slug: "third",
			Excerpt: "Networks and defense", PublishedAt: day(3),
			Tags: []string{"networking", "go"}, Category: "software-development",
			Published: true, Featured: true,
		},
		{
			ID: "p2", BlogID: 2, Title: "Second", Slug: "second",
			Excerpt: "A security write-up", PublishedAt: day(2),
			Tags: []string{"security"}, Category: "cybersecurity",
			Published: true,
		},
		{
			ID: "p1", BlogID: 1, Title: "First", Slug: "first",
			Excerpt: "Older security notes", PublishedAt: day(1),
			Tags: []string{"security", "go"}, Category: "cybersecurity",
			Published: true, Featured: true,
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(fixturePosts(t), DefaultCategories())
}

func slugs(posts []Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func assertSlugs(t *testing.T, got []Post, want ...string) {
	t.Helper()
	gotSlugs := slugs(got)
	if len(gotSlugs) != len(want) {
		t.Fatalf("got %v, want %v", gotSlugs, want)
	}
	for i := range want {
		if gotSlugs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotSlugs, want)
		}
	}
}

func TestPostsExcludesDrafts(t *testing.T) {
	s := newTestStore(t)
	assertSlugs(t, s.Posts(), "third", "second", "first")
}

func TestAllPostsIncludesDrafts(t *testing.T) {
	s := newTestStore(t)
	assertSlugs(t, s.AllPosts(), "fourth", "third", "second", "first")
}

func TestFeatured(t *testing.T) {
	s := newTestStore(t)
	assertSlugs(t, s.Featured(), "third", "first")
}

func TestByCategory(t *testing.T) {
	s := newTestStore(t)
	assertSlugs(t, s.ByCategory("cybersecurity"), "second", "first")

	if got := s.ByCategory("no-such-category"); len(got) != 0 {
		t.Errorf("unknown category returned %v", slugs(got))
	}
}

func TestByTagCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	assertSlugs(t, s.ByTag("GO"), "third", "first")
	// The draft carries "testing"; it must not leak through the tag path.
	if got := s.ByTag("testing"); len(got) != 0 {
		t.Errorf("draft leaked through ByTag: %v", slugs(got))
	}
}

func TestBySlug(t *testing.T) {
	s := newTestStore(t)

	post, err := s.BySlug("second")
	if err != nil {
		t.Fatalf("BySlug(second): %v", err)
	}
	if post.ID != "p2" {
		t.Errorf("BySlug(second).ID = %q, want p2", post.ID)
	}

	// Slug matching is exact and case-sensitive.
	if _, err := s.BySlug("Second"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BySlug(Second) err = %v, want ErrNotFound", err)
	}
	// Unpublished posts are indistinguishable from absent ones.
	if _, err := s.BySlug("fourth"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BySlug(fourth) err = %v, want ErrNotFound", err)
	}
	if _, err := s.BySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BySlug(missing) err = %v, want ErrNotFound", err)
	}
}

func TestByBlogID(t *testing.T) {
	s := newTestStore(t)

	post, err := s.ByBlogID(3)
	if err != nil {
		t.Fatalf("ByBlogID(3): %v", err)
	}
	if post.Slug != "third" {
		t.Errorf("ByBlogID(3).Slug = %q, want third", post.Slug)
	}
	if _, err := s.ByBlogID(4); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByBlogID(4) on draft err = %v, want ErrNotFound", err)
	}
	if _, err := s.ByBlogID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByBlogID(99) err = %v, want ErrNotFound", err)
	}
}

func TestAnyBySlugSeesDrafts(t *testing.T) {
	s := newTestStore(t)
	post, err := s.AnyBySlug("fourth")
	if err != nil {
		t.Fatalf("AnyBySlug(fourth): %v", err)
	}
	if post.Published {
		t.Error("expected a draft")
	}
}

func TestRelated(t *testing.T) {
	s := newTestStore(t)
	ref, err := s.BySlug("first")
	if err != nil {
		t.Fatal(err)
	}

	// "second" shares the category, "third" shares the go tag; the draft
	// "fourth" matches nothing visible. Collection order is preserved.
	assertSlugs(t, s.Related(ref, DefaultRelatedLimit), "third", "second")
}

func TestRelatedExcludesSelfAndDrafts(t *testing.T) {
	s := newTestStore(t)
	ref, _ := s.BySlug("first")

	for _, p := range s.Related(ref, 10) {
		if p.ID == ref.ID {
			t.Error("related included the reference post")
		}
		if !p.Published {
			t.Error("related included a draft")
		}
	}
}

func TestRelatedLimit(t *testing.T) {
	s := newTestStore(t)
	ref, _ := s.BySlug("first")

	if got := s.Related(ref, 1); len(got) != 1 {
		t.Errorf("Related(limit=1) returned %d posts", len(got))
	}
	if got := s.Related(ref, 0); len(got) != 0 {
		t.Errorf("Related(limit=0) returned %d posts", len(got))
	}
	if got := s.Related(ref, -1); len(got) != 0 {
		t.Errorf("Related(limit=-1) returned %d posts", len(got))
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)

	// Title substring, case-insensitive.
	assertSlugs(t, s.Search("THIRD"), "third")
	// Excerpt substring.
	assertSlugs(t, s.Search("write-up"), "second")
	// Tag substring.
	assertSlugs(t, s.Search("network"), "third")
	// Drafts never match.
	if got := s.Search("Fourth"); len(got) != 0 {
		t.Errorf("draft leaked through Search: %v", slugs(got))
	}
	if got := s.Search("  "); len(got) != 0 {
		t.Errorf("blank query returned %v", slugs(got))
	}
}

func TestTags(t *testing.T) {
	s := newTestStore(t)
	want := []string{"go", "networking", "security"}
	got := s.Tags()
	if len(got) != len(want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tags() = %v, want %v", got, want)
		}
	}
}

func TestCategoryByID(t *testing.T) {
	s := newTestStore(t)
	cat, ok := s.CategoryByID("cybersecurity")
	if !ok {
		t.Fatal("cybersecurity category missing")
	}
	if cat.Name == "" || cat.Slug == "" {
		t.Errorf("incomplete category: %+v", cat)
	}
	if _, ok := s.CategoryByID("nope"); ok {
		t.Error("unknown category reported as found")
	}
}

func TestEmptyStore(t *testing.T) {
	s := NewStore(nil, nil)
	if got := s.Posts(); len(got) != 0 {
		t.Errorf("empty store returned posts: %v", slugs(got))
	}
	if _, err := s.BySlug("anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if got := s.Tags(); len(got) != 0 {
		t.Errorf("empty store returned tags: %v", got)
	}
}
