package domain

import (
	"sort"
	"time"
)

// AnnotationDocument is the serialization unit: the complete stroke set
// for one (user, document) pair. The host document's live annotation
// set is the authoritative "current" view; an AnnotationDocument is a
// snapshot taken on save and the value cached by the persistence layer.
type AnnotationDocument struct {
	// UserID identifies the owning user.
	UserID string

	// DocumentID identifies the annotated document. It is recorded in
	// the serialized header for traceability.
	DocumentID string

	// Strokes is the full stroke set across all pages.
	Strokes []Stroke

	// UpdatedAt is when the snapshot was taken or the file written.
	UpdatedAt time.Time
}

// NewAnnotationDocument returns an empty annotation document for the
// given (user, document) pair.
func NewAnnotationDocument(userID, documentID string) *AnnotationDocument {
	return &AnnotationDocument{
		UserID:     userID,
		DocumentID: documentID,
	}
}

// StrokesOnPage returns the strokes belonging to the given page.
func (d *AnnotationDocument) StrokesOnPage(pageIndex int) []Stroke {
	var out []Stroke
	for i := range d.Strokes {
		if d.Strokes[i].PageIndex == pageIndex {
			out = append(out, d.Strokes[i])
		}
	}
	return out
}

// Pages returns the sorted list of page indices that carry strokes.
func (d *AnnotationDocument) Pages() []int {
	seen := make(map[int]struct{})
	for i := range d.Strokes {
		seen[d.Strokes[i].PageIndex] = struct{}{}
	}
	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Clone returns a deep copy of the document.
func (d *AnnotationDocument) Clone() *AnnotationDocument {
	c := *d
	c.Strokes = make([]Stroke, len(d.Strokes))
	for i := range d.Strokes {
		c.Strokes[i] = *d.Strokes[i].Clone()
	}
	return &c
}

// CatalogEntry is one row of the annotation catalog: a summary of one
// (user, document) annotation file used for fast listing.
type CatalogEntry struct {
	UserID      string
	DocumentID  string
	StrokeCount int
	PageCount   int
	UpdatedAt   time.Time
}

// CatalogTotals aggregates the catalog across all users.
type CatalogTotals struct {
	Documents int
	Strokes   int
	Users     int
}

// MigrationResult reports the outcome of migrating one legacy
// annotation file to the current format.
type MigrationResult struct {
	DocumentID string
	Strokes    int
	BackupPath string
}
