package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	statsWindow  = 30 * 24 * time.Hour
	topPathLimit = 10
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	path       TEXT NOT NULL,
	ip_hash    TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	ts         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_ts ON visits (ts);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits (path);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is the analytics database handle.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (creating if necessary) the SQLite database at path and
// applies the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("analytics: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("analytics: open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// InitSalt loads the IP-hashing salt from the settings table, generating
// and persisting a random one on first run.
func (s *Store) InitSalt() error {
	var salt string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'ip_salt'`).Scan(&salt)
	switch {
	case err == nil:
		s.salt = salt
		return nil
	case errors.Is(err, sql.ErrNoRows):
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("analytics: generate salt: %w", err)
		}
		salt = hex.EncodeToString(raw)
		if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('ip_salt', ?)`, salt); err != nil {
			return fmt.Errorf("analytics: persist salt: %w", err)
		}
		s.salt = salt
		return nil
	default:
		return fmt.Errorf("analytics: load salt: %w", err)
	}
}

// HashIP returns the salted hash used in place of the visitor's address.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(s.salt + ip))
	return hex.EncodeToString(sum[:])
}

// RecordVisit inserts a page view.
func (s *Store) RecordVisit(v Visit) error {
	ts := v.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO visits (path, ip_hash, user_agent, ts) VALUES (?, ?, ?, ?)`,
		v.Path, v.IPHash, v.UserAgent, ts.Unix())
	if err != nil {
		return fmt.Errorf("analytics: record visit: %w", err)
	}
	return nil
}

// TotalVisits counts visits at or after since.
func (s *Store) TotalVisits(since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE ts >= ?`, since.Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics: count visits: %w", err)
	}
	return n, nil
}

// UniqueVisitors counts distinct hashed addresses at or after since.
func (s *Store) UniqueVisitors(since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT ip_hash) FROM visits WHERE ts >= ?`, since.Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics: count visitors: %w", err)
	}
	return n, nil
}

// TopPaths returns the most visited paths at or after since, most visited
// first.
func (s *Store) TopPaths(since time.Time, limit int) ([]PathCount, error) {
	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS n FROM visits WHERE ts >= ?
		 GROUP BY path ORDER BY n DESC, path ASC LIMIT ?`,
		since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top paths: %w", err)
	}
	defer rows.Close()

	var out []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("analytics: scan path count: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// Stats gathers the standard 30-day report.
func (s *Store) Stats() (Stats, error) {
	since := time.Now().UTC().Add(-statsWindow)

	total, err := s.TotalVisits(since)
	if err != nil {
		return Stats{}, err
	}
	unique, err := s.UniqueVisitors(since)
	if err != nil {
		return Stats{}, err
	}
	top, err := s.TopPaths(since, topPathLimit)
	if err != nil {
		return Stats{}, err
	}
	if top == nil {
		top = []PathCount{}
	}
	return Stats{
		TotalVisits:    total,
		UniqueVisitors: unique,
		TopPaths:       top,
		Since:          since,
	}, nil
}

// PruneBefore deletes visits older than cutoff and returns the number
// removed.
func (s *Store) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visits WHERE ts < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("analytics: prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
