package linkcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// CacheEntry is a stored external link result.
type CacheEntry struct {
	URL           string
	Status        int
	OK            bool
	Error         string
	CheckedAt     time.Time
	FailureCount  int
	FirstFailedAt time.Time
}

// Cache stores external link results between runs.
type Cache interface {
	Get(ctx context.Context, url string) (*CacheEntry, error)
	Put(ctx context.Context, entry *CacheEntry) error
	Close() error
}

// SQLiteCache implements Cache on a SQLite file.
type SQLiteCache struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLiteCache opens or creates the cache database at path.
// Use ":memory:" for a process-local cache.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	c := &SQLiteCache{db: db}
	if err := c.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return c, nil
}

func (c *SQLiteCache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS link_results (
		url TEXT PRIMARY KEY,
		status INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		checked_at INTEGER NOT NULL,
		failure_count INTEGER NOT NULL DEFAULT 0,
		first_failed_at INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_link_results_checked_at ON link_results(checked_at);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the entry for url, or nil when none is stored.
func (c *SQLiteCache) Get(ctx context.Context, url string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		e           CacheEntry
		ok          int
		checkedAt   int64
		firstFailed int64
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT url, status, ok, error, checked_at, failure_count, first_failed_at FROM link_results WHERE url = ?",
		url,
	).Scan(&e.URL, &e.Status, &ok, &e.Error, &checkedAt, &e.FailureCount, &firstFailed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query link result: %w", err)
	}
	e.OK = ok != 0
	e.CheckedAt = time.Unix(checkedAt, 0)
	if firstFailed != 0 {
		e.FirstFailedAt = time.Unix(firstFailed, 0)
	}
	return &e, nil
}

// Put inserts or replaces the entry for entry.URL.
func (c *SQLiteCache) Put(ctx context.Context, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := 0
	if entry.OK {
		ok = 1
	}
	var firstFailed int64
	if !entry.FirstFailedAt.IsZero() {
		firstFailed = entry.FirstFailedAt.Unix()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO link_results (url, status, ok, error, checked_at, failure_count, first_failed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			status = excluded.status,
			ok = excluded.ok,
			error = excluded.error,
			checked_at = excluded.checked_at,
			failure_count = excluded.failure_count,
			first_failed_at = excluded.first_failed_at`,
		entry.URL, entry.Status, ok, entry.Error, entry.CheckedAt.Unix(), entry.FailureCount, firstFailed,
	)
	if err != nil {
		return fmt.Errorf("upsert link result: %w", err)
	}
	return nil
}

// Prune deletes entries checked before cutoff and returns how many were removed.
func (c *SQLiteCache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx, "DELETE FROM link_results WHERE checked_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune link results: %w", err)
	}
	return res.RowsAffected()
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
