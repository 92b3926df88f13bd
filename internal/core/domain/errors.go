package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrDegenerateStroke indicates a point sequence too small or a
	// bounding box with no area. Callers treat this as an accidental
	// tap rather than a real stroke and discard the operation silently.
	ErrDegenerateStroke = errors.New("degenerate stroke")

	// ErrPageMismatch indicates a stroke's page fingerprint no longer
	// matches the page it was captured on.
	ErrPageMismatch = errors.New("page geometry mismatch")

	// ErrPageOutOfRange indicates a page index outside the host
	// document.
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrForeignAnnotation indicates an annotation that cannot be
	// attributed to Inkwell. Foreign annotations are never mutated,
	// serialized, or erase-tested.
	ErrForeignAnnotation = errors.New("annotation belongs to another application")

	// ErrNotBound indicates the ink service has no bound document.
	ErrNotBound = errors.New("no document bound")
)
