package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mgulumser/folio"
	"github.com/mgulumser/folio/content"
)

const postsDir = "content/posts"

func loadAll() ([]folio.Post, error) {
	fsys, paths := content.Sources()
	return folio.LoadPosts(fsys, paths, zap.NewNop())
}

// runNew scaffolds a draft post file under content/posts. The author still
// has to add the file to the content source list; the scaffold prints a
// reminder.
func runNew(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf(`usage: folio new "Post Title"`)
	}
	title := strings.TrimSpace(args[0])

	posts, err := loadAll()
	if err != nil {
		return err
	}

	nextBlogID := 1
	for _, p := range posts {
		if p.BlogID >= nextBlogID {
			nextBlogID = p.BlogID + 1
		}
	}

	post := folio.ComposePost(folio.Post{
		ID:       folio.Slugify(title),
		BlogID:   nextBlogID,
		Title:    title,
		Content:  "Write your post here.",
		Author:   folio.Author{Name: folio.EnvOr("SITE_AUTHOR", "")},
		Category: "personal",
		Tags:     []string{"draft"},
	})
	post.Published = false

	for _, existing := range posts {
		if existing.Slug == post.Slug {
			return fmt.Errorf("a post with slug %q already exists", post.Slug)
		}
	}

	out, err := folio.ExportMarkdown(post)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(postsDir, post.Slug+".md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return err
	}

	fmt.Printf("created %s (blogId %d)\n", path, post.BlogID)
	fmt.Println("add it to the source list in content/embed.go and rebuild")
	return nil
}

func runList() error {
	posts, err := loadAll()
	if err != nil {
		return err
	}
	for _, p := range posts {
		state := "draft"
		if p.Published {
			state = "published"
		}
		fmt.Printf("%3d  %-10s  %s  %s\n", p.BlogID, state, p.PublishedAt.Format("2006-01-02"), p.Slug)
	}
	fmt.Printf("%d posts\n", len(posts))
	return nil
}

func runValidate() error {
	posts, err := loadAll()
	if err != nil {
		return err
	}
	invalid := 0
	for _, p := range posts {
		errs := folio.ValidatePost(p)
		if len(errs) == 0 {
			continue
		}
		invalid++
		fmt.Printf("%s:\n", p.Slug)
		for _, e := range errs {
			fmt.Printf("  - %s\n", e)
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d posts have problems", invalid, len(posts))
	}
	fmt.Printf("all %d posts valid\n", len(posts))
	return nil
}

func runExport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: folio export <slug>")
	}
	posts, err := loadAll()
	if err != nil {
		return err
	}
	for _, p := range posts {
		if p.Slug == args[0] {
			out, err := folio.ExportMarkdown(p)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}
	}
	return fmt.Errorf("no post with slug %q", args[0])
}
