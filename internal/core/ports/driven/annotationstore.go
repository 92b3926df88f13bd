package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// AnnotationStore persists annotation documents per (user, document)
// pair and maintains an in-memory load cache keyed by that pair.
type AnnotationStore interface {
	// Load returns the annotation document for the pair. A cache hit
	// returns immediately; a miss reads and parses the backing file.
	// Missing or corrupt files are never fatal: Load returns a fresh
	// empty document instead of an error in that case.
	Load(ctx context.Context, userID, documentID string) (*domain.AnnotationDocument, error)

	// Save serializes the document and writes it atomically, creating
	// parent directories as needed, then updates the cache. Write
	// failures are returned to the caller.
	Save(ctx context.Context, doc *domain.AnnotationDocument) error

	// Delete removes the pair's annotation file and cache entry.
	Delete(ctx context.Context, userID, documentID string) error

	// List returns the document IDs that have annotations for a user.
	List(ctx context.Context, userID string) ([]string, error)

	// Evict drops the cache entry for one pair. Called on
	// document-switch.
	Evict(userID, documentID string)

	// Reset clears the whole cache. Called on sign-out to avoid
	// cross-user leakage.
	Reset()
}

// Migrator converts legacy JSON annotation files to the current
// interchange format.
type Migrator interface {
	// MigrateUser converts every legacy file of the user that has no
	// current-format counterpart, then renames the legacy file with a
	// .bak suffix rather than deleting it.
	MigrateUser(ctx context.Context, userID string) ([]domain.MigrationResult, error)
}

// CatalogStore maintains the per-(user, document) annotation summary
// index used for fast listings.
type CatalogStore interface {
	// Upsert inserts or replaces the entry for its (user, document)
	// pair.
	Upsert(ctx context.Context, entry domain.CatalogEntry) error

	// Remove deletes the entry for a pair. Removing a missing entry is
	// not an error.
	Remove(ctx context.Context, userID, documentID string) error

	// ListByUser returns the user's entries ordered by document ID.
	ListByUser(ctx context.Context, userID string) ([]domain.CatalogEntry, error)

	// Totals aggregates the catalog across all users.
	Totals(ctx context.Context) (domain.CatalogTotals, error)

	// Close releases the underlying database handle.
	Close() error
}
