package domain

import (
	"fmt"
	"strings"
	"time"
)

// OwnerTag is the application identifier written into serialized
// annotations. Annotations carrying a different tag belong to another
// tool and are never mutated or re-serialized by Inkwell.
const OwnerTag = "Inkwell"

// ToolKind identifies the drawing tool that produced a stroke.
type ToolKind string

const (
	ToolPen         ToolKind = "pen"
	ToolPencil      ToolKind = "pencil"
	ToolHighlighter ToolKind = "highlighter"

	// ToolEraser is a capture-time tool only. Eraser gestures remove
	// existing strokes and are never persisted as drawable ink.
	ToolEraser ToolKind = "eraser"
)

// ParseToolKind maps a serialized tool name to a ToolKind.
// Unknown names fall back to pen, matching the codec's posture of
// defaulting rather than failing on unrecognised attributes.
func ParseToolKind(s string) ToolKind {
	switch ToolKind(strings.ToLower(strings.TrimSpace(s))) {
	case ToolPencil:
		return ToolPencil
	case ToolHighlighter:
		return ToolHighlighter
	case ToolEraser:
		return ToolEraser
	default:
		return ToolPen
	}
}

// DefaultOpacity returns the tool-dependent default stroke opacity.
func DefaultOpacity(tool ToolKind) float64 {
	if tool == ToolHighlighter {
		return 0.4
	}
	return 1.0
}

// Stroke represents one freehand ink path anchored to a document page.
// Strokes are treated as immutable values once created; undo/redo
// replays attach/detach of the same value rather than editing it.
type Stroke struct {
	// ID is the unique identifier for the stroke.
	ID string

	// PageIndex is the zero-based index of the owning page.
	PageIndex int

	// Fingerprint captures the geometry of the page the stroke was
	// drawn on. Computed once at creation, never mutated.
	Fingerprint PageFingerprint

	// Tool is the drawing tool that produced the stroke.
	Tool ToolKind

	// Color is the stroke colour.
	Color Color

	// Width is the line width in page-space units.
	Width float64

	// Opacity is the stroke alpha in [0, 1].
	Opacity float64

	// Points is the ordered point sequence in page-native space.
	// A valid stroke has at least 2 points.
	Points []Point

	// Origin tags the application that created the stroke. Strokes
	// created by Inkwell carry OwnerTag.
	Origin string

	// CreatedAt is when the stroke was drawn.
	CreatedAt time.Time

	// UpdatedAt is when the stroke was last modified.
	UpdatedAt time.Time
}

// Validate checks the stroke invariants: at least 2 points, positive
// width, opacity within [0, 1].
func (s *Stroke) Validate() error {
	if len(s.Points) < 2 {
		return fmt.Errorf("%w: stroke needs at least 2 points, got %d", ErrDegenerateStroke, len(s.Points))
	}
	if s.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %g", ErrInvalidInput, s.Width)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("%w: opacity must be in [0,1], got %g", ErrInvalidInput, s.Opacity)
	}
	return nil
}

// Bounds returns the stroke's padded bounding rectangle.
// The standard padding for a stroke is Width/2 + 2.
func (s *Stroke) Bounds(pad float64) Rect {
	return BoundsOf(s.Points, pad)
}

// Owned reports whether the stroke carries the Inkwell ownership tag.
func (s *Stroke) Owned() bool {
	return s.Origin == OwnerTag
}

// Clone returns a deep copy of the stroke.
func (s *Stroke) Clone() *Stroke {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return &c
}
