// Package sqlite provides SQLite-backed persistence for the step catalog.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/insight-hunter/insight-hunter/internal/catalog"
	"github.com/insight-hunter/insight-hunter/internal/catalog/sqlite/migrations"
	"github.com/insight-hunter/insight-hunter/internal/platform/storage/sqlitemigrate"
)

// Store reads and seeds onboarding steps in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens and migrates a catalog SQLite store.
//
// Use ":memory:" for an ephemeral database in tests.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
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

// Step returns the step for slug, or catalog.ErrNotFound.
func (s *Store) Step(ctx context.Context, slug string) (catalog.Step, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return catalog.Step{}, catalog.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT slug, title, body_html, cta_label, next_slug FROM steps WHERE slug = ?`, slug)

	var step catalog.Step
	if err := row.Scan(&step.Slug, &step.Title, &step.BodyHTML, &step.CTALabel, &step.NextSlug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Step{}, fmt.Errorf("step %q: %w", slug, catalog.ErrNotFound)
		}
		return catalog.Step{}, fmt.Errorf("get step %q: %w", slug, err)
	}
	return step, nil
}

// NextChain returns the slug → next_slug pointer map for every step.
func (s *Store) NextChain(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, next_slug FROM steps`)
	if err != nil {
		return nil, fmt.Errorf("list step chain: %w", err)
	}
	defer rows.Close()

	chain := make(map[string]string)
	for rows.Next() {
		var slug, next string
		if err := rows.Scan(&slug, &next); err != nil {
			return nil, fmt.Errorf("scan step chain: %w", err)
		}
		chain[slug] = next
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step chain: %w", err)
	}
	return chain, nil
}

// UpsertStep writes one step, replacing any existing row for its slug.
// Content authoring is external; only the seeder calls this.
func (s *Store) UpsertStep(ctx context.Context, step catalog.Step) error {
	step.Slug = strings.TrimSpace(step.Slug)
	if step.Slug == "" {
		return fmt.Errorf("step slug is required")
	}
	if strings.TrimSpace(step.Title) == "" {
		return fmt.Errorf("step title is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO steps (slug, title, body_html, cta_label, next_slug)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    title = excluded.title,
		    body_html = excluded.body_html,
		    cta_label = excluded.cta_label,
		    next_slug = excluded.next_slug`,
		step.Slug, step.Title, step.BodyHTML, step.CTALabel, step.NextSlug)
	if err != nil {
		return fmt.Errorf("upsert step %q: %w", step.Slug, err)
	}
	return nil
}

// SeedSteps writes all steps in one transaction.
func (s *Store) SeedSteps(ctx context.Context, steps []catalog.Step) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO steps (slug, title, body_html, cta_label, next_slug)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(slug) DO UPDATE SET
			    title = excluded.title,
			    body_html = excluded.body_html,
			    cta_label = excluded.cta_label,
			    next_slug = excluded.next_slug`,
			step.Slug, step.Title, step.BodyHTML, step.CTALabel, step.NextSlug); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed step %q: %w", step.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
