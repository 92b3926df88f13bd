package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storemem "github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/axf"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func seedLibraryStore(t *testing.T) *storemem.AnnotationStore {
	t.Helper()
	store := storemem.NewAnnotationStore()
	ctx := context.Background()

	doc := domain.NewAnnotationDocument("user-1", "algebra")
	doc.Strokes = []domain.Stroke{
		{ID: "s-1", PageIndex: 0, Tool: domain.ToolPen, Origin: domain.OwnerTag,
			Width: 2, Opacity: 1, Points: []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		{ID: "s-2", PageIndex: 0, Tool: domain.ToolHighlighter, Origin: domain.OwnerTag,
			Width: 8, Opacity: 0.4, Points: []domain.Point{{X: 3, Y: 3}, {X: 4, Y: 4}}},
		{ID: "s-3", PageIndex: 2, Tool: domain.ToolPen, Origin: domain.OwnerTag,
			Width: 2, Opacity: 1, Points: []domain.Point{{X: 5, Y: 5}, {X: 6, Y: 6}}},
	}
	require.NoError(t, store.Save(ctx, doc))
	require.NoError(t, store.Save(ctx, domain.NewAnnotationDocument("user-1", "biology")))
	return store
}

func TestLibraryService_ListDocumentsWithoutCatalog(t *testing.T) {
	svc := NewLibraryService(seedLibraryStore(t), nil, axf.New())

	entries, err := svc.ListDocuments(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "algebra", entries[0].DocumentID)
	assert.Equal(t, 3, entries[0].StrokeCount)
	assert.Equal(t, 2, entries[0].PageCount)
	assert.Equal(t, "biology", entries[1].DocumentID)
	assert.Equal(t, 0, entries[1].StrokeCount)
}

func TestLibraryService_Show(t *testing.T) {
	svc := NewLibraryService(seedLibraryStore(t), nil, axf.New())

	summary, err := svc.Show(context.Background(), "user-1", "algebra")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Strokes)
	require.Len(t, summary.Pages, 2)

	assert.Equal(t, 0, summary.Pages[0].PageIndex)
	assert.Equal(t, 2, summary.Pages[0].Strokes)
	assert.Equal(t, 1, summary.Pages[0].Tools[domain.ToolPen])
	assert.Equal(t, 1, summary.Pages[0].Tools[domain.ToolHighlighter])
	assert.Equal(t, 2, summary.Pages[1].PageIndex)
	assert.Equal(t, 1, summary.Pages[1].Strokes)
}

func TestLibraryService_Export(t *testing.T) {
	svc := NewLibraryService(seedLibraryStore(t), nil, axf.New())

	out, err := svc.Export(context.Background(), "user-1", "algebra")
	require.NoError(t, err)

	xml := string(out)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, "algebra.pdf")
	assert.Equal(t, 3, strings.Count(xml, "<ink "))
}

func TestLibraryService_StatsRequiresCatalog(t *testing.T) {
	svc := NewLibraryService(seedLibraryStore(t), nil, axf.New())

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
