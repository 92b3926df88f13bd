package geometry

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// DefaultSegments is the default number of interpolated points per
// spline span.
const DefaultSegments = 12

// DefaultTension is the canonical Catmull-Rom tension.
const DefaultTension = 0.5

// Smooth interpolates a point sequence into a smooth curve. For 4 or
// more control points it walks a Catmull-Rom spline producing segments
// interpolated points per span, with tension in [0, 1] (0.5 is the
// standard curve). Exactly 2 points fall back to linear interpolation
// and exactly 3 to quadratic Bezier interpolation.
func Smooth(points []domain.Point, segments int, tension float64) []domain.Point {
	if segments < 1 {
		segments = DefaultSegments
	}
	if tension < 0 || tension > 1 {
		tension = DefaultTension
	}

	switch {
	case len(points) < 2:
		return points
	case len(points) == 2:
		return lerpPoints(points[0], points[1], segments)
	case len(points) == 3:
		return quadraticBezier(points[0], points[1], points[2], segments)
	default:
		return catmullRom(points, segments, tension)
	}
}

// Refine is the combined simplify-then-smooth pipeline. Inputs of 3 or
// fewer points are returned unchanged since reduction is not
// meaningful below that size.
func Refine(points []domain.Point, epsilon float64, segments int, tension float64) []domain.Point {
	if len(points) <= 3 {
		return points
	}
	return Smooth(Simplify(points, epsilon), segments, tension)
}

// lerpPoints linearly interpolates segments+1 points from a to b.
func lerpPoints(a, b domain.Point, segments int) []domain.Point {
	out := make([]domain.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		out = append(out, domain.Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		})
	}
	return out
}

// quadraticBezier interpolates a quadratic Bezier through a, control
// point c, and b.
func quadraticBezier(a, c, b domain.Point, segments int) []domain.Point {
	out := make([]domain.Point, 0, 2*segments+1)
	steps := 2 * segments
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		out = append(out, domain.Point{
			X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
			Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
		})
	}
	return out
}

// catmullRom walks a cardinal spline over the control points. End
// spans reuse the terminal points as phantom neighbours so the curve
// passes through the first and last input points.
func catmullRom(points []domain.Point, segments int, tension float64) []domain.Point {
	n := len(points)
	out := make([]domain.Point, 0, (n-1)*segments+1)
	out = append(out, points[0])

	for i := 0; i < n-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, n-1)]

		// Cardinal spline tangents scaled by tension.
		m1x := tension * (p2.X - p0.X)
		m1y := tension * (p2.Y - p0.Y)
		m2x := tension * (p3.X - p1.X)
		m2y := tension * (p3.Y - p1.Y)

		for s := 1; s <= segments; s++ {
			t := float64(s) / float64(segments)
			t2 := t * t
			t3 := t2 * t

			h00 := 2*t3 - 3*t2 + 1
			h10 := t3 - 2*t2 + t
			h01 := -2*t3 + 3*t2
			h11 := t3 - t2

			out = append(out, domain.Point{
				X: h00*p1.X + h10*m1x + h01*p2.X + h11*m2x,
				Y: h00*p1.Y + h10*m1y + h01*p2.Y + h11*m2y,
			})
		}
	}
	return out
}
