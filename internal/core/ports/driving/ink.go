package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// InkService is the single authority mutating a host document's live
// annotation set and the only component permitted to push or pop
// undo/redo records.
type InkService interface {
	// Bind attaches the service to a (user, document) pair and its
	// host document. Binding unconditionally resets the undo and redo
	// stacks and the session registry so identifiers never leak across
	// documents.
	Bind(ctx context.Context, userID, documentID string, host driven.HostDocument) error

	// CommitCapture runs the full capture pipeline on a finished
	// drawing gesture: surface-to-page transform, simplification,
	// smoothing, zoom width compensation, then Create. Eraser gestures
	// erase along the path instead and return no stroke. A degenerate
	// gesture is discarded silently and returns (nil, nil).
	CommitCapture(ctx context.Context, in CaptureInput) (*domain.Stroke, error)

	// Create builds a stroke from page-native points and attaches it
	// to the host page. A degenerate input is discarded silently and
	// returns (nil, nil).
	Create(ctx context.Context, in StrokeInput) (*domain.Stroke, error)

	// Remove detaches an Inkwell-owned stroke from a page.
	Remove(ctx context.Context, pageIndex int, strokeID string) error

	// Undo reverses the most recent mutation. Returns false if the
	// undo stack is empty.
	Undo(ctx context.Context) (bool, error)

	// Redo replays the most recently undone mutation. Returns false if
	// the redo stack is empty.
	Redo(ctx context.Context) (bool, error)

	// ClearPage removes every Inkwell-owned stroke on a page, one undo
	// record per stroke. Returns the number removed.
	ClearPage(ctx context.Context, pageIndex int) (int, error)

	// EraseAt removes at most one Inkwell-owned stroke within radius
	// of the point. The nearest match wins. Returns whether a stroke
	// was removed.
	EraseAt(ctx context.Context, pageIndex int, p domain.Point, radius float64) (bool, error)

	// Save snapshots the host document's Inkwell-owned strokes and
	// persists them. Write failures are returned to the caller.
	Save(ctx context.Context) error

	// Load reads the persisted annotation set and re-attaches it to
	// the host document.
	Load(ctx context.Context) error

	// Dirty reports whether there are unsaved mutations.
	Dirty() bool
}

// CaptureInput is a finished drawing gesture as delivered by the
// stylus/touch input surface, in capture-surface coordinates.
type CaptureInput struct {
	// Points is the raw captured point sequence (top-down coordinates).
	Points []domain.Point

	// SurfaceWidth and SurfaceHeight are the surface's pixel size.
	SurfaceWidth  float64
	SurfaceHeight float64

	// Scale is the host viewer's current zoom factor, used to
	// compensate the committed line width.
	Scale float64

	// PageIndex is the page the gesture was drawn on.
	PageIndex int

	// Tool is the active drawing tool.
	Tool domain.ToolKind

	// Color is the stroke colour.
	Color domain.Color

	// RawWidth is the line width on the capture surface.
	RawWidth float64
}

// StrokeInput describes a stroke to create from page-native points.
type StrokeInput struct {
	Points    []domain.Point
	PageIndex int
	Tool      domain.ToolKind
	Color     domain.Color
	Width     float64
}
