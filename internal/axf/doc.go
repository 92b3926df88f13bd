// Package axf implements the AXF annotation interchange codec: an
// XFDF-dialect XML document carrying one ink element per stroke.
//
// Serialization emits a fixed header (xfdf root, pdf-info href, annots
// container) and one <ink> element per Inkwell-owned stroke, each with
// one <gesture> child holding "x,y;x,y;..." point pairs. Parsing is an
// event-driven scan over the XML token stream that reconstructs one
// partial-annotation accumulator per ink element, falling back to
// documented defaults for missing attributes. Content with no
// well-formed ink elements decodes to an empty document, never an
// error: a corrupt annotation file must not block opening the
// underlying document.
package axf
