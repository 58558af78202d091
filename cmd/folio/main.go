// Command folio runs the portfolio site and provides authoring helpers for
// the embedded post collection.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mgulumser/folio"
)

var version = "dev"

func main() {
	// Missing .env is fine; environment variables may come from anywhere.
	_ = godotenv.Load()

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe()
	case "new":
		err = runNew(args)
	case "list":
		err = runList()
	case "validate":
		err = runValidate()
	case "export":
		err = runExport(args)
	case "version":
		fmt.Println("folio", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "folio: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "folio:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`Usage: folio [command]

Commands:
  serve      Run the site (default)
  new        Scaffold a new post: folio new "Post Title"
  list       List the embedded posts
  validate   Check every embedded post for missing fields
  export     Print a post as markdown: folio export <slug>
  version    Print the version
`)
}

func runServe() error {
	cfg := configFromEnv()
	app := folio.New(cfg)
	defer app.Close()
	return app.Start()
}

func configFromEnv() folio.SiteConfig {
	return folio.SiteConfig{
		Name:        folio.EnvOr("SITE_NAME", "Folio"),
		URL:         folio.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: folio.EnvOr("SITE_DESCRIPTION", ""),
		Author:      folio.EnvOr("SITE_AUTHOR", ""),
		Addr:        folio.EnvOr("LISTEN_ADDR", ":3000"),

		AnalyticsEnabled:      folio.EnvOr("ANALYTICS_ENABLED", "true") == "true",
		AnalyticsDatabasePath: folio.EnvOr("ANALYTICS_DB_PATH", "data/analytics.db"),

		AdminPassword: folio.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: folio.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  folio.EnvOr("COOKIE_SECURE", "false") == "true",

		LogLevel:  folio.EnvOr("LOG_LEVEL", "info"),
		LogFormat: folio.EnvOr("LOG_FORMAT", "json"),
	}
}
