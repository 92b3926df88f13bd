package driven

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// Codec serializes annotation documents to the AXF interchange format
// and parses AXF content back into annotation records.
type Codec interface {
	// Encode serializes the document's Inkwell-owned strokes, page by
	// page. Foreign strokes are filtered out so another tool's data is
	// never rewritten.
	Encode(doc *domain.AnnotationDocument) ([]byte, error)

	// Decode parses AXF content. Missing attributes fall back to
	// documented defaults; content with no well-formed ink elements
	// yields an empty document, not an error.
	Decode(data []byte) (*domain.AnnotationDocument, error)

	// Extension returns the file extension for the encoded form,
	// without the leading dot.
	Extension() string
}
