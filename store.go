package folio

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a requested post does not exist or is not
// visible through the public retrieval path.
var ErrNotFound = errors.New("folio: post not found")

// DefaultRelatedLimit bounds related-post suggestions when the caller does
// not ask for a specific count.
const DefaultRelatedLimit = 3

// Store is an immutable snapshot of the post collection plus the category
// registry. All reads are pure; there is no mutation path after New.
type Store struct {
	posts      []Post // sorted by PublishedAt descending at load
	bySlug     map[string]int
	byBlogID   map[int]int
	categories []Category
	byCategory map[string]int
}

// NewStore builds a Store over an already-loaded, already-sorted post
// collection (see LoadPosts) and a category registry.
func NewStore(posts []Post, categories []Category) *Store {
	s := &Store{
		posts:      posts,
		bySlug:     make(map[string]int, len(posts)),
		byBlogID:   make(map[int]int, len(posts)),
		categories: categories,
		byCategory: make(map[string]int, len(categories)),
	}
	for i, p := range posts {
		s.bySlug[p.Slug] = i
		s.byBlogID[p.BlogID] = i
	}
	for i, c := range categories {
		s.byCategory[c.ID] = i
	}
	return s
}

// Posts returns every published post, newest first.
func (s *Store) Posts() []Post {
	return s.filter(func(p Post) bool { return p.Published })
}

// AllPosts returns every post including drafts, newest first. Callers must
// treat this as an editorial view, not a public one.
func (s *Store) AllPosts() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Featured returns published posts flagged for promotional placement.
func (s *Store) Featured() []Post {
	return s.filter(func(p Post) bool { return p.Published && p.Featured })
}

// ByCategory returns published posts in the given category, newest first.
func (s *Store) ByCategory(categoryID string) []Post {
	return s.filter(func(p Post) bool { return p.Published && p.Category == categoryID })
}

// ByTag returns published posts carrying the given tag (case-insensitive).
func (s *Store) ByTag(tag string) []Post {
	want := strings.ToLower(strings.TrimSpace(tag))
	return s.filter(func(p Post) bool {
		if !p.Published {
			return false
		}
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == want {
				return true
			}
		}
		return false
	})
}

// BySlug returns the published post with the given slug (case-sensitive
// exact match), or ErrNotFound. Absence is expected, not exceptional:
// unknown and unpublished slugs look identical from outside.
func (s *Store) BySlug(slug string) (Post, error) {
	i, ok := s.bySlug[slug]
	if !ok || !s.posts[i].Published {
		return Post{}, ErrNotFound
	}
	return s.posts[i], nil
}

// ByBlogID returns the published post with the given routing id, or
// ErrNotFound.
func (s *Store) ByBlogID(blogID int) (Post, error) {
	i, ok := s.byBlogID[blogID]
	if !ok || !s.posts[i].Published {
		return Post{}, ErrNotFound
	}
	return s.posts[i], nil
}

// AnyBySlug returns a post by slug regardless of published state. This is
// the draft-preview path; it must only be reachable behind admin auth.
func (s *Store) AnyBySlug(slug string) (Post, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return s.posts[i], nil
}

// Related returns up to limit published posts sharing the reference post's
// category or at least one tag, in collection order. The match is binary:
// a category-and-tag match ranks no higher than a tag-only match. The
// reference itself and drafts never appear. limit <= 0 yields nothing.
func (s *Store) Related(ref Post, limit int) []Post {
	if limit <= 0 {
		return nil
	}
	tagSet := make(map[string]struct{}, len(ref.Tags))
	for _, t := range ref.Tags {
		tagSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	var related []Post
	for _, p := range s.posts {
		if !p.Published || p.ID == ref.ID {
			continue
		}
		if p.Category == ref.Category || anyTagIn(p.Tags, tagSet) {
			related = append(related, p)
		}
		if len(related) == limit {
			break
		}
	}
	return related
}

// Search matches q case-insensitively as a substring of the title, the
// excerpt, or any tag of published posts.
func (s *Store) Search(q string) []Post {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return nil
	}
	return s.filter(func(p Post) bool {
		if !p.Published {
			return false
		}
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Excerpt), term) {
			return true
		}
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), term) {
				return true
			}
		}
		return false
	})
}

// Tags returns the sorted, deduplicated, lowercased tags of all published
// posts.
func (s *Store) Tags() []string {
	set := make(map[string]struct{})
	for _, p := range s.posts {
		if !p.Published {
			continue
		}
		for _, t := range p.Tags {
			set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
	}
	var out []string
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Categories returns the category registry in declaration order.
func (s *Store) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByID looks up display metadata for a category identifier.
func (s *Store) CategoryByID(id string) (Category, bool) {
	i, ok := s.byCategory[id]
	if !ok {
		return Category{}, false
	}
	return s.categories[i], true
}

func (s *Store) filter(keep func(Post) bool) []Post {
	var out []Post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func anyTagIn(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}
