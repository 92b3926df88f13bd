package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/axf"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), axf.New())
	require.NoError(t, err)
	return store
}

func testDocument(userID, documentID string) *domain.AnnotationDocument {
	doc := domain.NewAnnotationDocument(userID, documentID)
	doc.Strokes = []domain.Stroke{
		{
			ID:        "s-1",
			PageIndex: 0,
			Tool:      domain.ToolPen,
			Color:     domain.Color{R: 255},
			Width:     3,
			Opacity:   1,
			Origin:    domain.OwnerTag,
			Points:    []domain.Point{{X: 10, Y: 10}, {X: 20, Y: 30}},
		},
	}
	return doc
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("user-1", "doc-1")))

	// The file lands at the per-user path.
	path := store.Path("user-1", "doc-1")
	assert.True(t, strings.HasSuffix(path, filepath.Join("annotations", "user-1", "doc-1.xfdf")))
	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	require.Len(t, loaded.Strokes, 1)
	assert.Equal(t, "s-1", loaded.Strokes[0].ID)
	assert.Equal(t, "#FF0000", loaded.Strokes[0].Color.Hex())
	assert.Len(t, loaded.Strokes[0].Points, 2)
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load(context.Background(), "user-1", "never-saved")
	require.NoError(t, err)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "never-saved", doc.DocumentID)
	assert.Empty(t, doc.Strokes)
}

func TestStore_LoadCorruptIsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(store.userDir("user-1"), 0700))
	require.NoError(t, os.WriteFile(store.Path("user-1", "doc-1"), []byte("not xml at all"), 0600))

	doc, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, doc.Strokes)
}

func TestStore_LoadUsesCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("user-1", "doc-1")))
	_, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)

	// Change the file behind the cache: without an eviction the stale
	// cached copy is still served.
	require.NoError(t, os.Remove(store.Path("user-1", "doc-1")))
	cached, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Len(t, cached.Strokes, 1)

	store.Evict("user-1", "doc-1")
	fresh, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Strokes)
}

func TestStore_DeleteAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("user-1", "b")))
	require.NoError(t, store.Save(ctx, testDocument("user-1", "a")))
	require.NoError(t, store.Save(ctx, testDocument("user-2", "c")))

	ids, err := store.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "user-1", "a"))
	ids, err = store.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "user-1", "a"))
}

func TestStore_ListUnknownUserIsEmpty(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_SaveIsAtomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("user-1", "doc-1")))

	// No temp files are left behind.
	entries, err := os.ReadDir(store.userDir("user-1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc-1.xfdf", entries[0].Name())
}

const legacyJSON = `{
  "userId": "user-1",
  "textbookId": "algebra",
  "annotations": [
    {
      "id": "legacy-1",
      "pageIndex": 0,
      "pageFingerprint": {"mediaBoxX": 0, "mediaBoxY": 0, "mediaBoxWidth": 612, "mediaBoxHeight": 792, "rotation": 0},
      "tool": "pen",
      "colorHex": "#FF0000",
      "lineWidth": 3.0,
      "alpha": 1.0,
      "points": [[10, 10], [20, 30], [40, 15]],
      "createdAt": "2024-03-01T10:00:00Z"
    },
    {
      "id": "legacy-2",
      "pageIndex": 1,
      "pageFingerprint": {"mediaBoxX": 0, "mediaBoxY": 0, "mediaBoxWidth": 612, "mediaBoxHeight": 792, "rotation": 0},
      "tool": "highlighter",
      "colorHex": "#FFFF00",
      "lineWidth": 8.0,
      "alpha": 0.4,
      "points": [[50, 50], [150, 50]],
      "createdAt": "2024-03-01T10:05:00Z"
    }
  ],
  "updatedAt": "2024-03-01T10:05:00Z"
}`

func writeLegacy(t *testing.T, store *Store, userID, documentID, content string) string {
	t.Helper()
	dir := store.userDir(userID)
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, documentID+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestStore_MigrateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	legacyPath := writeLegacy(t, store, "user-1", "algebra", legacyJSON)

	results, err := store.MigrateUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "algebra", results[0].DocumentID)
	assert.Equal(t, 2, results[0].Strokes)
	assert.Equal(t, legacyPath+".bak", results[0].BackupPath)

	// The legacy file was renamed, not deleted.
	_, err = os.Stat(legacyPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(legacyPath + ".bak")
	require.NoError(t, err)

	// The AXF file carries both strokes with their attributes.
	data, err := os.ReadFile(store.Path("user-1", "algebra"))
	require.NoError(t, err)
	xml := string(data)
	assert.Equal(t, 2, strings.Count(xml, "<ink "))
	assert.Contains(t, xml, "#FF0000")
	assert.Contains(t, xml, "opacity=\"0.4\"")

	loaded, err := store.Load(ctx, "user-1", "algebra")
	require.NoError(t, err)
	require.Len(t, loaded.Strokes, 2)
	assert.Equal(t, domain.ToolHighlighter, loaded.Strokes[1].Tool)
	assert.Equal(t, 1, loaded.Strokes[1].PageIndex)
}

func TestStore_MigrateUserSkipsAlreadyMigrated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	writeLegacy(t, store, "user-1", "algebra", legacyJSON)
	require.NoError(t, store.Save(ctx, testDocument("user-1", "algebra")))

	results, err := store.MigrateUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, results)

	// The existing AXF content is untouched.
	loaded, err := store.Load(ctx, "user-1", "algebra")
	require.NoError(t, err)
	require.Len(t, loaded.Strokes, 1)
	assert.Equal(t, "s-1", loaded.Strokes[0].ID)
}

func TestStore_MigrateUserSkipsUnparsableFile(t *testing.T) {
	store := newTestStore(t)

	writeLegacy(t, store, "user-1", "broken", "{nope")
	writeLegacy(t, store, "user-1", "good", legacyJSON)

	results, err := store.MigrateUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].DocumentID)

	// The broken file stays in place for manual inspection.
	_, err = os.Stat(filepath.Join(store.userDir("user-1"), "broken.json"))
	require.NoError(t, err)
}

func TestStore_MigrateUserNoLegacyFiles(t *testing.T) {
	store := newTestStore(t)

	results, err := store.MigrateUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, results)
}
