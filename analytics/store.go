package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// Visit represents a single recorded page view.
type Visit struct {
	VisitorID string
	Path      string
	Referrer  string
	Timestamp time.Time
}

// PathCount is one row of the per-path view summary.
type PathCount struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// Summary aggregates views over a time range.
type Summary struct {
	TotalViews     int         `json:"total_views"`
	UniqueVisitors int         `json:"unique_visitors"`
	TopPaths       []PathCount `json:"top_paths"`
}

// NewStore opens (or creates) the analytics database at path and ensures
// the schema exists.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visitor_id TEXT NOT NULL,
    path TEXT NOT NULL,
    referrer TEXT,
    timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// SaveVisit stores a new visit.
func (s *Store) SaveVisit(v Visit) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (visitor_id, path, referrer, timestamp) VALUES (?, ?, ?, ?)`,
		v.VisitorID, v.Path, v.Referrer, v.Timestamp.UTC(),
	)
	return err
}

// GetSummary aggregates views between from and to.
func (s *Store) GetSummary(from, to time.Time, topN int) (*Summary, error) {
	sum := &Summary{TopPaths: []PathCount{}}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp BETWEEN ? AND ?`,
		from.UTC(), to.UTC(),
	).Scan(&sum.TotalViews, &sum.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS views FROM visits
		 WHERE timestamp BETWEEN ? AND ?
		 GROUP BY path ORDER BY views DESC LIMIT ?`,
		from.UTC(), to.UTC(), topN,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, err
		}
		sum.TopPaths = append(sum.TopPaths, pc)
	}
	return sum, rows.Err()
}

// CleanupOldVisits deletes visits older than retentionDays.
func (s *Store) CleanupOldVisits(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	_, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler runs CleanupOldVisits every interval until the
// returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				_ = s.CleanupOldVisits(retentionDays)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
