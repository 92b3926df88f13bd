// Package domain defines the core business entities for Inkwell.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Stroke: One freehand ink path, the atomic persisted annotation unit
//   - PageFingerprint: Geometric identity of the page a stroke was drawn on
//   - AnnotationDocument: The full stroke set for one (user, document) pair
//   - UndoRecord: One add/remove action on the undo or redo stack
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
