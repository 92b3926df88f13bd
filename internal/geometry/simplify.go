package geometry

import (
	"math"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// Simplify reduces a point sequence with the Douglas-Peucker
// algorithm. The first and last input points are always preserved
// verbatim; an intermediate point survives only if its perpendicular
// distance from the chord connecting its segment's endpoints exceeds
// epsilon. Epsilon is in page-space units; 1.0 to 3.0 gives readable
// ink.
func Simplify(points []domain.Point, epsilon float64) []domain.Point {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	simplifySegment(points, 0, len(points)-1, epsilon, keep)

	out := make([]domain.Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// simplifySegment marks the surviving points between first and last.
func simplifySegment(points []domain.Point, first, last int, epsilon float64, keep []bool) {
	if last-first < 2 {
		return
	}

	maxDist := 0.0
	maxIdx := first
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > epsilon {
		keep[maxIdx] = true
		simplifySegment(points, first, maxIdx, epsilon, keep)
		simplifySegment(points, maxIdx, last, epsilon, keep)
	}
}

// perpendicularDistance is the distance from p to the chord a-b.
// A zero-length chord falls back to direct point-to-point distance.
func perpendicularDistance(p, a, b domain.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

// PointToPolylineDistance returns the minimum distance from p to the
// polyline through points: the smaller of the point-to-point and
// point-to-segment minima.
func PointToPolylineDistance(p domain.Point, points []domain.Point) float64 {
	if len(points) == 0 {
		return math.Inf(1)
	}

	min := math.Hypot(p.X-points[0].X, p.Y-points[0].Y)
	for i := 1; i < len(points); i++ {
		if d := math.Hypot(p.X-points[i].X, p.Y-points[i].Y); d < min {
			min = d
		}
		if d := pointToSegmentDistance(p, points[i-1], points[i]); d < min {
			min = d
		}
	}
	return min
}

// pointToSegmentDistance is the distance from p to the segment a-b.
func pointToSegmentDistance(p, a, b domain.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
