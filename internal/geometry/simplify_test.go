package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// zigzag builds a noisy horizontal path with vertical jitter.
func zigzag(n int, amplitude float64) []domain.Point {
	points := make([]domain.Point, n)
	for i := range points {
		y := 0.0
		if i%2 == 1 {
			y = amplitude
		}
		points[i] = domain.Point{X: float64(i), Y: y}
	}
	return points
}

func TestSimplify_EndpointsPreserved(t *testing.T) {
	points := zigzag(20, 5)
	out := Simplify(points, 1.0)

	require.NotEmpty(t, out)
	assert.Equal(t, points[0], out[0])
	assert.Equal(t, points[len(points)-1], out[len(out)-1])
}

func TestSimplify_CollinearCollapses(t *testing.T) {
	points := []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}
	out := Simplify(points, 0.5)
	assert.Equal(t, []domain.Point{{X: 0, Y: 0}, {X: 4, Y: 0}}, out)
}

func TestSimplify_KeepsSignificantDeviation(t *testing.T) {
	points := []domain.Point{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}}
	out := Simplify(points, 2.0)
	assert.Len(t, out, 3)
}

func TestSimplify_Monotonicity(t *testing.T) {
	points := zigzag(50, 3)
	for _, pair := range [][2]float64{{0.5, 1.0}, {1.0, 2.0}, {2.0, 4.0}} {
		small := Simplify(points, pair[0])
		large := Simplify(points, pair[1])
		assert.GreaterOrEqual(t, len(small), len(large),
			"epsilon %v should keep at least as many points as %v", pair[0], pair[1])
	}
	// Output never exceeds input.
	assert.LessOrEqual(t, len(Simplify(points, 0.1)), len(points))
}

func TestSimplify_DegenerateChord(t *testing.T) {
	// Coincident endpoints: falls back to point-to-point distance.
	points := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	out := Simplify(points, 1.0)
	assert.Len(t, out, 3)

	flat := []domain.Point{{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0, Y: 0}}
	assert.Len(t, Simplify(flat, 1.0), 2)
}

func TestSimplify_SmallInputsUnchanged(t *testing.T) {
	two := []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, two, Simplify(two, 1.0))
	assert.Empty(t, Simplify(nil, 1.0))
}

func TestPointToPolylineDistance(t *testing.T) {
	line := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}

	// Perpendicular drop onto the segment interior.
	assert.InDelta(t, 3.0, PointToPolylineDistance(domain.Point{X: 5, Y: 3}, line), 1e-9)
	// Beyond the segment end: distance to the endpoint.
	assert.InDelta(t, 5.0, PointToPolylineDistance(domain.Point{X: 13, Y: 4}, line), 1e-9)
	// Empty polyline is infinitely far away.
	assert.True(t, math.IsInf(PointToPolylineDistance(domain.Point{}, nil), 1))
}
