package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB colour with 8-bit channels, serialized as #RRGGBB.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Black is the default stroke colour when none is recorded.
var Black = Color{}

// Hex returns the colour in #RRGGBB form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses a #RRGGBB colour string. The leading '#' is
// optional and hex digits are case-insensitive.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidInput, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q is not #RRGGBB", ErrInvalidInput, s)
	}
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
