package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	val, err := s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "" {
		t.Errorf("missing setting should be empty, got %q", val)
	}

	if err := s.SetSetting("hash_salt", "abc"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := s.SetSetting("hash_salt", "def"); err != nil {
		t.Fatalf("SetSetting upsert failed: %v", err)
	}
	val, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "def" {
		t.Errorf("GetSetting = %q, want def", val)
	}
}

func TestSaveVisitAndSummary(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()

	visits := []Visit{
		{VisitorID: "v1", Path: "/blog/a", Timestamp: now},
		{VisitorID: "v1", Path: "/blog/a", Timestamp: now},
		{VisitorID: "v2", Path: "/blog/b", Referrer: "example.org", Timestamp: now},
	}
	for _, v := range visits {
		if err := s.SaveVisit(v); err != nil {
			t.Fatalf("SaveVisit failed: %v", err)
		}
	}

	sum, err := s.GetSummary(now.Add(-time.Hour), now.Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", sum.TotalViews)
	}
	if sum.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", sum.UniqueVisitors)
	}
	if len(sum.TopPaths) != 2 || sum.TopPaths[0].Path != "/blog/a" || sum.TopPaths[0].Views != 2 {
		t.Errorf("TopPaths = %+v", sum.TopPaths)
	}
}

func TestSummaryRangeExcludesOutsideVisits(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()

	if err := s.SaveVisit(Visit{VisitorID: "v1", Path: "/", Timestamp: now.AddDate(0, 0, -40)}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveVisit(Visit{VisitorID: "v2", Path: "/", Timestamp: now}); err != nil {
		t.Fatal(err)
	}

	sum, err := s.GetSummary(now.AddDate(0, 0, -30), now.Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 (old visit outside range)", sum.TotalViews)
	}
}

func TestCleanupOldVisits(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()

	if err := s.SaveVisit(Visit{VisitorID: "old", Path: "/", Timestamp: now.AddDate(0, 0, -400)}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveVisit(Visit{VisitorID: "new", Path: "/", Timestamp: now}); err != nil {
		t.Fatal(err)
	}

	if err := s.CleanupOldVisits(365); err != nil {
		t.Fatalf("CleanupOldVisits failed: %v", err)
	}

	sum, err := s.GetSummary(now.AddDate(-2, 0, 0), now.Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 after cleanup", sum.TotalViews)
	}
}

func TestCleanReferrer(t *testing.T) {
	cases := []struct {
		ref, siteHost, want string
	}{
		{"", "myblog.dev", ""},
		{"https://news.ycombinator.com/item?id=1", "myblog.dev", "news.ycombinator.com"},
		{"https://www.google.com/search?q=secret", "myblog.dev", "google.com"},
		{"https://myblog.dev/blog/a", "myblog.dev", ""},
		{"https://www.myblog.dev/", "myblog.dev", ""},
		{"not a url", "myblog.dev", ""},
	}
	for _, tc := range cases {
		if got := CleanReferrer(tc.ref, tc.siteHost); got != tc.want {
			t.Errorf("CleanReferrer(%q, %q) = %q, want %q", tc.ref, tc.siteHost, got, tc.want)
		}
	}
}

func TestVisitorIDStable(t *testing.T) {
	a := VisitorID("203.0.113.10", "Browser/1.0")
	b := VisitorID("203.0.113.10", "Browser/1.0")
	c := VisitorID("203.0.113.11", "Browser/1.0")
	if a != b {
		t.Error("same inputs should hash identically")
	}
	if a == c {
		t.Error("different IPs should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected sha256 hex digest, got %q", a)
	}
}
