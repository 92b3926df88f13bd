package domain

// UndoAction tags what an UndoRecord undoes.
type UndoAction string

const (
	// ActionAdd records that a stroke was added to the document.
	ActionAdd UndoAction = "add"

	// ActionRemove records that a stroke was removed from the document.
	ActionRemove UndoAction = "remove"
)

// UndoRecord is the unit of the undo/redo stacks: one add or remove of
// a single stroke on a single page. Records are created on every
// mutating operation, consumed exactly once when popped, and never
// persisted.
type UndoRecord struct {
	Action    UndoAction
	Stroke    *Stroke
	PageIndex int
}
