package axf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Attribute defaults applied when an ink element is missing them.
const (
	defaultWidth   = 2.0
	defaultOpacity = 1.0
)

// Decode parses AXF content with an event-driven scan over the XML
// token stream. Attributes are read opportunistically; missing ones
// fall back to defaults (page 0, black, width 2.0, opacity 1.0, a
// fresh identifier, tool pen, current time). A token error mid-stream
// keeps whatever well-formed ink elements were already seen.
func (c *Codec) Decode(data []byte) (*domain.AnnotationDocument, error) {
	doc := domain.NewAnnotationDocument("", "")
	dec := xml.NewDecoder(bytes.NewReader(data))

	var cur *inkAccumulator
	var gesture strings.Builder
	inGesture := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("axf: malformed XML, keeping %d parsed strokes: %v", len(doc.Strokes), err)
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pdf-info":
				for _, a := range t.Attr {
					if a.Name.Local == "href" {
						doc.DocumentID = strings.TrimSuffix(a.Value, ".pdf")
					}
				}
			case "ink":
				cur = newInkAccumulator(t.Attr)
			case "gesture":
				if cur != nil {
					inGesture = true
					gesture.Reset()
				}
			}

		case xml.CharData:
			if inGesture {
				gesture.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "gesture":
				if cur != nil && inGesture {
					cur.points = append(cur.points, parseGesture(gesture.String())...)
				}
				inGesture = false
			case "ink":
				if cur != nil {
					if s, ok := cur.stroke(); ok {
						doc.Strokes = append(doc.Strokes, s)
					}
					cur = nil
				}
			}
		}
	}

	return doc, nil
}

// inkAccumulator collects one partial annotation while its ink element
// is being scanned.
type inkAccumulator struct {
	s      domain.Stroke
	points []domain.Point
}

// newInkAccumulator seeds an accumulator from the ink element's
// attributes, defaulting everything that is missing or malformed.
func newInkAccumulator(attrs []xml.Attr) *inkAccumulator {
	now := time.Now()
	acc := &inkAccumulator{
		s: domain.Stroke{
			ID:        uuid.New().String(),
			Tool:      domain.ToolPen,
			Color:     domain.Black,
			Width:     defaultWidth,
			Opacity:   defaultOpacity,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, a := range attrs {
		val := a.Value
		switch a.Name.Local {
		case "page":
			if p, err := strconv.Atoi(val); err == nil && p >= 0 {
				acc.s.PageIndex = p
			}
		case "color":
			if c, err := domain.ParseHexColor(val); err == nil {
				acc.s.Color = c
			}
		case "width":
			if w, err := strconv.ParseFloat(val, 64); err == nil && w > 0 {
				acc.s.Width = w
			}
		case "opacity":
			if o, err := strconv.ParseFloat(val, 64); err == nil && o >= 0 && o <= 1 {
				acc.s.Opacity = o
			}
		case "name":
			if val != "" {
				acc.s.ID = val
			}
		case "title":
			acc.s.Origin = val
		case "subject":
			acc.s.Tool = domain.ParseToolKind(val)
		case "creationdate":
			if ts, err := time.Parse(time.RFC3339, val); err == nil {
				acc.s.CreatedAt = ts
			}
		case "date":
			if ts, err := time.Parse(time.RFC3339, val); err == nil {
				acc.s.UpdatedAt = ts
			}
		}
	}

	return acc
}

// stroke finalises the accumulator. An ink element with fewer than two
// well-formed points is not a stroke and is dropped.
func (a *inkAccumulator) stroke() (domain.Stroke, bool) {
	if len(a.points) < 2 {
		return domain.Stroke{}, false
	}
	a.s.Points = a.points
	return a.s, true
}

// parseGesture splits "x1,y1;x2,y2;..." into points, discarding any
// pair that fails numeric parse.
func parseGesture(text string) []domain.Point {
	pairs := strings.Split(strings.TrimSpace(text), ";")
	points := make([]domain.Point, 0, len(pairs))

	for _, pair := range pairs {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, domain.Point{X: x, Y: y})
	}
	return points
}
