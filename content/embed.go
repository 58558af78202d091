// Package content carries the embedded post collection. Every post source
// is listed explicitly; adding a post means adding the file and its path
// here, so the set of published content is always visible in one place.
package content

import (
	"embed"
	"io/fs"
)

//go:embed posts/*.md
var postsFS embed.FS

var sources = []string{
	"posts/express-security.md",
	"posts/oxford-research.md",
	"posts/routerguard.md",
	"posts/career-transition.md",
}

// Sources returns the embedded content filesystem and the explicit list of
// post source paths within it.
func Sources() (fs.FS, []string) {
	return postsFS, sources
}
