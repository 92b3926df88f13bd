package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// LibraryService answers read-only questions about stored annotation
// sets: what documents a user has annotated and what they contain.
type LibraryService interface {
	// ListDocuments returns catalog entries for a user. When no
	// catalog is configured it falls back to scanning the store.
	ListDocuments(ctx context.Context, userID string) ([]domain.CatalogEntry, error)

	// Show returns the per-page stroke summary of one document.
	Show(ctx context.Context, userID, documentID string) (*DocumentSummary, error)

	// Export returns the serialized AXF form of one document.
	Export(ctx context.Context, userID, documentID string) ([]byte, error)

	// Stats aggregates the catalog across all users.
	Stats(ctx context.Context) (domain.CatalogTotals, error)
}

// MigrationService runs legacy-format migrations.
type MigrationService interface {
	// MigrateUser converts a user's legacy JSON annotation files to
	// AXF, backing up the originals.
	MigrateUser(ctx context.Context, userID string) ([]domain.MigrationResult, error)
}

// DocumentSummary is a display-oriented view of one annotation set.
type DocumentSummary struct {
	UserID     string
	DocumentID string
	Strokes    int
	Pages      []PageSummary
}

// PageSummary counts the strokes of a single page.
type PageSummary struct {
	PageIndex int
	Strokes   int
	Tools     map[domain.ToolKind]int
}
