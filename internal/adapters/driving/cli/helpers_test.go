package cli

import (
	"context"

	storemem "github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/axf"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/services"
)

// fakeMigrator returns canned migration results.
type fakeMigrator struct {
	results []domain.MigrationResult
	err     error
}

func (f *fakeMigrator) MigrateUser(_ context.Context, _ string) ([]domain.MigrationResult, error) {
	return f.results, f.err
}

// setupTestServices wires the commands to in-memory services with a
// small seeded library. The returned cleanup restores the package
// state.
func setupTestServices() func() {
	store := storemem.NewAnnotationStore()
	ctx := context.Background()

	doc := domain.NewAnnotationDocument("user-1", "algebra")
	doc.Strokes = []domain.Stroke{
		{ID: "s-1", PageIndex: 0, Tool: domain.ToolPen, Origin: domain.OwnerTag,
			Width: 2, Opacity: 1, Points: []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		{ID: "s-2", PageIndex: 3, Tool: domain.ToolHighlighter, Origin: domain.OwnerTag,
			Width: 8, Opacity: 0.4, Points: []domain.Point{{X: 3, Y: 3}, {X: 4, Y: 4}}},
	}
	_ = store.Save(ctx, doc)
	_ = store.Save(ctx, domain.NewAnnotationDocument("user-1", "biology"))

	libraryService = services.NewLibraryService(store, nil, axf.New())
	migrationService = services.NewMigrationService(&fakeMigrator{
		results: []domain.MigrationResult{
			{DocumentID: "algebra", Strokes: 2, BackupPath: "/tmp/algebra.json.bak"},
		},
	})

	return func() {
		libraryService = nil
		migrationService = nil
		catalogStore = nil
	}
}

// setupEmptyMigration swaps in a migrator with nothing to do.
func setupEmptyMigration() {
	migrationService = services.NewMigrationService(&fakeMigrator{})
}
