package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func TestAnnotationStore_SaveLoad(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	doc := domain.NewAnnotationDocument("user-1", "doc-1")
	doc.Strokes = []domain.Stroke{{ID: "s-1", Points: []domain.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}}
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	require.Len(t, loaded.Strokes, 1)
	assert.Equal(t, "s-1", loaded.Strokes[0].ID)

	// Loaded documents are independent copies.
	loaded.Strokes[0].ID = "mutated"
	again, err := store.Load(ctx, "user-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", again.Strokes[0].ID)
}

func TestAnnotationStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewAnnotationStore()

	doc, err := store.Load(context.Background(), "user-1", "nope")
	require.NoError(t, err)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "nope", doc.DocumentID)
	assert.Empty(t, doc.Strokes)
}

func TestAnnotationStore_ListAndDelete(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.NewAnnotationDocument("user-1", "b"))
	_ = store.Save(ctx, domain.NewAnnotationDocument("user-1", "a"))
	_ = store.Save(ctx, domain.NewAnnotationDocument("user-2", "c"))

	ids, err := store.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "user-1", "a"))
	ids, err = store.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}
