// Package sqlite provides SQLite-backed persistence for the render cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/insight-hunter/insight-hunter/internal/platform/storage/sqlitemigrate"
	"github.com/insight-hunter/insight-hunter/internal/rendercache"
	"github.com/insight-hunter/insight-hunter/internal/rendercache/sqlite/migrations"
)

// Store persists render cache entries in SQLite.
//
// Cache data is always derived and can be discarded and rebuilt from a
// fresh render at any time.
type Store struct {
	db *sql.DB
}

// Open opens and migrates a render cache SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the entry for key when present.
func (s *Store) Get(ctx context.Context, key rendercache.Key) (rendercache.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT slug, template_version, page, served_stale, refreshed_at, expires_at
		 FROM cache_entries WHERE cache_key = ?`, key.String())

	var entry rendercache.Entry
	var servedStale int64
	var refreshedAt, expiresAt int64
	if err := row.Scan(&entry.Key.Slug, &entry.Key.TemplateVersion, &entry.Page, &servedStale, &refreshedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rendercache.Entry{}, false, nil
		}
		return rendercache.Entry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.ServedStale = servedStale != 0
	entry.RefreshedAt = time.UnixMilli(refreshedAt).UTC()
	entry.ExpiresAt = time.UnixMilli(expiresAt).UTC()
	return entry, true, nil
}

// Put upserts an entry by key.
func (s *Store) Put(ctx context.Context, entry rendercache.Entry) error {
	if len(entry.Page) == 0 {
		return fmt.Errorf("cache page is required")
	}
	servedStale := 0
	if entry.ServedStale {
		servedStale = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, slug, template_version, page, served_stale, refreshed_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    page = excluded.page,
		    served_stale = excluded.served_stale,
		    refreshed_at = excluded.refreshed_at,
		    expires_at = excluded.expires_at`,
		entry.Key.String(), entry.Key.Slug, entry.Key.TemplateVersion, entry.Page,
		servedStale, entry.RefreshedAt.UnixMilli(), entry.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}
