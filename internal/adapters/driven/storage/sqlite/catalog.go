// Package sqlite provides the SQLite-backed catalog: a small summary
// index over stored annotation sets, so listings and statistics never
// have to parse AXF files.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.CatalogStore = (*Catalog)(nil)

// Catalog is a SQLite-based catalog store.
type Catalog struct {
	db   *sql.DB
	path string
}

// NewCatalog opens (or creates) the catalog database under dataDir.
// If dataDir is empty, defaults to ~/.inkwell/data.
func NewCatalog(dataDir string) (*Catalog, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkwell", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL mode for better concurrency.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Catalog{
		db:   db,
		path: dbPath,
	}

	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}

// Upsert inserts or replaces the entry for its (user, document) pair.
func (c *Catalog) Upsert(ctx context.Context, entry domain.CatalogEntry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO catalog (user_id, document_id, stroke_count, page_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, document_id) DO UPDATE SET
			stroke_count = excluded.stroke_count,
			page_count = excluded.page_count,
			updated_at = excluded.updated_at
	`, entry.UserID, entry.DocumentID, entry.StrokeCount, entry.PageCount, entry.UpdatedAt.UTC())

	if err != nil {
		return fmt.Errorf("upserting catalog entry: %w", err)
	}
	return nil
}

// Remove deletes the entry for a pair. Removing a missing entry is not
// an error.
func (c *Catalog) Remove(ctx context.Context, userID, documentID string) error {
	_, err := c.db.ExecContext(ctx,
		"DELETE FROM catalog WHERE user_id = ? AND document_id = ?", userID, documentID)
	if err != nil {
		return fmt.Errorf("removing catalog entry: %w", err)
	}
	return nil
}

// ListByUser returns the user's entries ordered by document ID.
func (c *Catalog) ListByUser(ctx context.Context, userID string) ([]domain.CatalogEntry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT user_id, document_id, stroke_count, page_count, updated_at
		FROM catalog
		WHERE user_id = ?
		ORDER BY document_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		if err := rows.Scan(&entry.UserID, &entry.DocumentID,
			&entry.StrokeCount, &entry.PageCount, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Totals aggregates the catalog across all users.
func (c *Catalog) Totals(ctx context.Context) (domain.CatalogTotals, error) {
	var totals domain.CatalogTotals
	row := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(stroke_count), 0), COUNT(DISTINCT user_id)
		FROM catalog
	`)
	if err := row.Scan(&totals.Documents, &totals.Strokes, &totals.Users); err != nil {
		return domain.CatalogTotals{}, fmt.Errorf("aggregating catalog: %w", err)
	}
	return totals, nil
}

// migrate runs all pending migrations.
func (c *Catalog) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := c.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
