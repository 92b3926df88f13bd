package services

import (
	"context"
	"sort"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService answers read-only questions about stored annotation
// sets.
type LibraryService struct {
	store   driven.AnnotationStore
	catalog driven.CatalogStore
	codec   driven.Codec
}

// NewLibraryService creates a new library service. The catalog may be
// nil; listings then fall back to scanning the store.
func NewLibraryService(store driven.AnnotationStore, catalog driven.CatalogStore, codec driven.Codec) *LibraryService {
	return &LibraryService{
		store:   store,
		catalog: catalog,
		codec:   codec,
	}
}

// ListDocuments returns catalog entries for a user.
func (s *LibraryService) ListDocuments(ctx context.Context, userID string) ([]domain.CatalogEntry, error) {
	if s.catalog != nil {
		return s.catalog.ListByUser(ctx, userID)
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	// No catalog: scan the store and summarise each document.
	ids, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	entries := make([]domain.CatalogEntry, 0, len(ids))
	for _, id := range ids {
		doc, err := s.store.Load(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.CatalogEntry{
			UserID:      userID,
			DocumentID:  id,
			StrokeCount: len(doc.Strokes),
			PageCount:   len(doc.Pages()),
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return entries, nil
}

// Show returns the per-page stroke summary of one document.
func (s *LibraryService) Show(ctx context.Context, userID, documentID string) (*driving.DocumentSummary, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.store.Load(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	summary := &driving.DocumentSummary{
		UserID:     userID,
		DocumentID: documentID,
		Strokes:    len(doc.Strokes),
	}
	for _, page := range doc.Pages() {
		strokes := doc.StrokesOnPage(page)
		ps := driving.PageSummary{
			PageIndex: page,
			Strokes:   len(strokes),
			Tools:     make(map[domain.ToolKind]int),
		}
		for i := range strokes {
			ps.Tools[strokes[i].Tool]++
		}
		summary.Pages = append(summary.Pages, ps)
	}
	return summary, nil
}

// Export returns the serialized AXF form of one document.
func (s *LibraryService) Export(ctx context.Context, userID, documentID string) ([]byte, error) {
	if s.store == nil || s.codec == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.store.Load(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	return s.codec.Encode(doc)
}

// Stats aggregates the catalog across all users.
func (s *LibraryService) Stats(ctx context.Context) (domain.CatalogTotals, error) {
	if s.catalog == nil {
		return domain.CatalogTotals{}, domain.ErrNotImplemented
	}
	return s.catalog.Totals(ctx)
}
