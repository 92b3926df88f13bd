package axf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

// Namespace is the fixed XML namespace of the interchange format.
const Namespace = "http://ns.adobe.com/xfdf/"

// FileExtension is the on-disk extension for encoded documents.
const FileExtension = "xfdf"

// Codec encodes and decodes AXF annotation documents.
type Codec struct{}

// New creates a new AXF codec.
func New() *Codec {
	return &Codec{}
}

// Extension returns the file extension for the encoded form.
func (c *Codec) Extension() string {
	return FileExtension
}

// Encode serializes the document's Inkwell-owned strokes to AXF.
// Eraser strokes and strokes belonging to other applications are
// filtered out. User-controlled string attributes are XML-escaped.
func (c *Codec) Encode(doc *domain.AnnotationDocument) ([]byte, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, "<xfdf xmlns=%q xml:space=\"preserve\">\n", Namespace)
	fmt.Fprintf(&buf, "<pdf-info href=\"%s.pdf\"/>\n", escape(doc.DocumentID))
	buf.WriteString("<annots>\n")

	for _, page := range doc.Pages() {
		for _, s := range doc.StrokesOnPage(page) {
			if !s.Owned() || s.Tool == domain.ToolEraser {
				continue
			}
			if err := s.Validate(); err != nil {
				continue
			}
			writeInk(&buf, &s)
		}
	}

	buf.WriteString("</annots>\n")
	buf.WriteString("</xfdf>\n")
	return buf.Bytes(), nil
}

// writeInk emits one <ink> element with its gesture child.
func writeInk(buf *bytes.Buffer, s *domain.Stroke) {
	bounds := s.Bounds(s.Width/2 + 2)

	fmt.Fprintf(buf,
		"<ink page=\"%d\" rect=\"%s,%s,%s,%s\" color=\"%s\" width=\"%s\" opacity=\"%s\" name=\"%s\" title=\"%s\" subject=\"%s\" creationdate=\"%s\" date=\"%s\">",
		s.PageIndex,
		num(bounds.MinX), num(bounds.MinY), num(bounds.MaxX), num(bounds.MaxY),
		s.Color.Hex(),
		num(s.Width),
		num(s.Opacity),
		escape(s.ID),
		escape(s.Origin),
		string(s.Tool),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)

	buf.WriteString("<gesture>")
	for i, p := range s.Points {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.WriteString(num(p.X))
		buf.WriteByte(',')
		buf.WriteString(num(p.Y))
	}
	buf.WriteString("</gesture>")
	buf.WriteString("</ink>\n")
}

// num formats a float with full round-trip precision.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escape XML-escapes a user-controlled string for attribute use.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
