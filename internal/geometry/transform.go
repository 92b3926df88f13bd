package geometry

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// SurfaceToPage maps capture-surface points into page-native
// coordinates. Capture surfaces are top-down (origin top-left) while
// page-native space is bottom-up (origin bottom-left), so the vertical
// axis is always inverted. Scale factors are computed independently
// per axis; the surface and page need not share an aspect ratio.
//
// If either surface dimension is zero the transform fails closed and
// returns an empty sequence rather than dividing by zero.
func SurfaceToPage(points []domain.Point, surfaceWidth, surfaceHeight, pageWidth, pageHeight float64) []domain.Point {
	if surfaceWidth == 0 || surfaceHeight == 0 {
		return nil
	}

	scaleX := pageWidth / surfaceWidth
	scaleY := pageHeight / surfaceHeight

	out := make([]domain.Point, len(points))
	for i, p := range points {
		out[i] = domain.Point{
			X: p.X * scaleX,
			Y: pageHeight - p.Y*scaleY,
		}
	}
	return out
}

// CompensateWidth converts a raw capture-surface line width into a
// page-space width so that a stroke drawn at any zoom level renders at
// a consistent thickness once committed. A non-positive scale leaves
// the width untouched.
func CompensateWidth(rawWidth, scale float64) float64 {
	if scale <= 0 {
		return rawWidth
	}
	return rawWidth / scale
}
