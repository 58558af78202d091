package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.InitSalt(); err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitSaltPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analytics.db")

	first, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := first.InitSalt(); err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	hash := first.HashIP("203.0.113.9")
	first.Close()

	second, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if err := second.InitSalt(); err != nil {
		t.Fatalf("InitSalt after reopen: %v", err)
	}
	if got := second.HashIP("203.0.113.9"); got != hash {
		t.Errorf("hash changed after reopen: %q != %q", got, hash)
	}
}

func TestHashIPDiffersPerAddress(t *testing.T) {
	store := setupTestStore(t)
	if store.HashIP("203.0.113.9") == store.HashIP("203.0.113.10") {
		t.Error("different addresses produced the same hash")
	}
	if store.HashIP("203.0.113.9") == "203.0.113.9" {
		t.Error("hash leaked the raw address")
	}
}

func TestRecordAndCount(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	visits := []Visit{
		{Path: "/blog/first", IPHash: store.HashIP("10.0.0.1"), Timestamp: now},
		{Path: "/blog/first", IPHash: store.HashIP("10.0.0.2"), Timestamp: now},
		{Path: "/blog/second", IPHash: store.HashIP("10.0.0.1"), Timestamp: now},
	}
	for _, v := range visits {
		if err := store.RecordVisit(v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	since := now.Add(-time.Hour)
	total, err := store.TotalVisits(since)
	if err != nil {
		t.Fatalf("TotalVisits: %v", err)
	}
	if total != 3 {
		t.Errorf("TotalVisits = %d, want 3", total)
	}

	unique, err := store.UniqueVisitors(since)
	if err != nil {
		t.Fatalf("UniqueVisitors: %v", err)
	}
	if unique != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", unique)
	}
}

func TestTopPathsOrder(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		if err := store.RecordVisit(Visit{Path: "/blog/popular", IPHash: "h", Timestamp: now}); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	if err := store.RecordVisit(Visit{Path: "/blog/quiet", IPHash: "h", Timestamp: now}); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	top, err := store.TopPaths(now.Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("TopPaths: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopPaths returned %d entries, want 2", len(top))
	}
	if top[0].Path != "/blog/popular" || top[0].Count != 3 {
		t.Errorf("top entry = %+v, want /blog/popular with 3", top[0])
	}
}

func TestPruneBefore(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	old := Visit{Path: "/blog/old", IPHash: "h", Timestamp: now.Add(-48 * time.Hour)}
	recent := Visit{Path: "/blog/new", IPHash: "h", Timestamp: now}
	for _, v := range []Visit{old, recent} {
		if err := store.RecordVisit(v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	removed, err := store.PruneBefore(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("PruneBefore removed %d, want 1", removed)
	}

	total, err := store.TotalVisits(time.Time{})
	if err != nil {
		t.Fatalf("TotalVisits: %v", err)
	}
	if total != 1 {
		t.Errorf("TotalVisits after prune = %d, want 1", total)
	}
}

func TestStatsEmpty(t *testing.T) {
	store := setupTestStore(t)
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisits != 0 || stats.UniqueVisitors != 0 {
		t.Errorf("empty store reported visits: %+v", stats)
	}
	if stats.TopPaths == nil {
		t.Error("TopPaths should be empty slice, not nil")
	}
}
