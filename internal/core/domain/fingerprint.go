package domain

import "math"

// FingerprintTolerance is the maximum per-field drift allowed when
// matching page geometry across document reloads.
const FingerprintTolerance = 0.1

// PageFingerprint captures a page's geometric identity: media box
// origin and size plus rotation. It validates that coordinates captured
// in an earlier session still apply to the same page layout.
type PageFingerprint struct {
	// X and Y are the media box origin.
	X float64
	Y float64

	// Width and Height are the media box size.
	Width  float64
	Height float64

	// Rotation is one of 0, 90, 180, 270.
	Rotation int
}

// IsZero reports whether the fingerprint carries no geometry, which is
// the case for strokes parsed from serialized form (the interchange
// format does not record page geometry).
func (f PageFingerprint) IsZero() bool {
	return f == PageFingerprint{}
}

// Matches reports whether two fingerprints describe the same page
// layout: all geometric fields within FingerprintTolerance and an
// exact rotation match.
func (f PageFingerprint) Matches(other PageFingerprint) bool {
	if f.Rotation != other.Rotation {
		return false
	}
	return math.Abs(f.X-other.X) <= FingerprintTolerance &&
		math.Abs(f.Y-other.Y) <= FingerprintTolerance &&
		math.Abs(f.Width-other.Width) <= FingerprintTolerance &&
		math.Abs(f.Height-other.Height) <= FingerprintTolerance
}

// Bounds returns the page's media box as a rectangle.
func (f PageFingerprint) Bounds() Rect {
	return Rect{
		MinX: f.X,
		MinY: f.Y,
		MaxX: f.X + f.Width,
		MaxY: f.Y + f.Height,
	}
}
