// Package memory provides an in-memory implementation of the host
// document port: a stand-in for the external viewer that holds pages
// with geometry and attached annotation objects.
package memory

import (
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Document implements the interface.
var _ driven.HostDocument = (*Document)(nil)

// Document is an in-memory host document.
type Document struct {
	pages []page
}

type page struct {
	fp      domain.PageFingerprint
	strokes []*domain.Stroke
}

// NewDocument creates a host document with one page per fingerprint.
func NewDocument(pages ...domain.PageFingerprint) *Document {
	d := &Document{pages: make([]page, len(pages))}
	for i, fp := range pages {
		d.pages[i] = page{fp: fp}
	}
	return d
}

// NewLetterDocument creates a host document of n US-letter pages, a
// convenient default for tests and the CLI export path.
func NewLetterDocument(n int) *Document {
	pages := make([]domain.PageFingerprint, n)
	for i := range pages {
		pages[i] = domain.PageFingerprint{Width: 612, Height: 792}
	}
	return NewDocument(pages...)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Geometry returns the geometric identity of a page.
func (d *Document) Geometry(pageIndex int) (domain.PageFingerprint, error) {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return domain.PageFingerprint{}, domain.ErrPageOutOfRange
	}
	return d.pages[pageIndex].fp, nil
}

// Attach adds a stroke to a page's live annotation set.
func (d *Document) Attach(pageIndex int, stroke *domain.Stroke) error {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return domain.ErrPageOutOfRange
	}
	d.pages[pageIndex].strokes = append(d.pages[pageIndex].strokes, stroke)
	return nil
}

// Detach removes the stroke with the given ID from a page.
func (d *Document) Detach(pageIndex int, strokeID string) error {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return domain.ErrPageOutOfRange
	}
	strokes := d.pages[pageIndex].strokes
	for i, s := range strokes {
		if s.ID == strokeID {
			d.pages[pageIndex].strokes = append(strokes[:i], strokes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Attached returns the strokes currently attached to a page in
// attachment order.
func (d *Document) Attached(pageIndex int) ([]*domain.Stroke, error) {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return nil, domain.ErrPageOutOfRange
	}
	out := make([]*domain.Stroke, len(d.pages[pageIndex].strokes))
	copy(out, d.pages[pageIndex].strokes)
	return out, nil
}
