// Package analytics records page views in a local SQLite database. Visitor
// IPs are never stored directly; they are hashed with a per-database random
// salt so visits can be deduplicated without keeping personal data around.
package analytics

import "time"

// Visit is a single recorded page view.
type Visit struct {
	Path      string
	IPHash    string
	UserAgent string
	Timestamp time.Time
}

// PathCount pairs a path with its view count.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Stats summarizes activity over the reporting window.
type Stats struct {
	TotalVisits    int         `json:"totalVisits"`
	UniqueVisitors int         `json:"uniqueVisitors"`
	TopPaths       []PathCount `json:"topPaths"`
	Since          time.Time   `json:"since"`
}
