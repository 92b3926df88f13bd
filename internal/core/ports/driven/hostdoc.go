package driven

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// HostDocument is the viewer-side document that displays committed
// annotations. The core requires a stable page index, per-page
// geometry, and the ability to attach and detach annotation objects;
// it requires no rendering capability beyond "display whatever is
// attached".
//
// All mutations of a host document happen on a single logical thread
// tied to the document's lifetime; callers must serialize access
// externally if used from multiple threads.
type HostDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Geometry returns the geometric identity of a page.
	Geometry(pageIndex int) (domain.PageFingerprint, error)

	// Attach adds a stroke to a page's live annotation set.
	Attach(pageIndex int, stroke *domain.Stroke) error

	// Detach removes the stroke with the given ID from a page.
	// Returns domain.ErrNotFound if no such stroke is attached.
	Detach(pageIndex int, strokeID string) error

	// Attached returns the strokes currently attached to a page, in
	// attachment order. This includes annotations created by other
	// applications.
	Attached(pageIndex int) ([]*domain.Stroke, error)
}
