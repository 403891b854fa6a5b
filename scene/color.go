package scene

import (
	"errors"
	"image/color"
)

// ErrInvalidHex is returned by ParseHex for malformed input.
var ErrInvalidHex = errors.New("scene: invalid hex color")

// Color is a straight (non-premultiplied) RGBA color. Each channel is
// nominally in [0, 1]; out-of-range values are stored as given.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA creates a color from its four channels.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromColor converts a standard color.Color. Go colors are premultiplied,
// so the channels are divided by alpha.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	fa := float32(a)
	return Color{
		R: float32(r) / fa,
		G: float32(g) / fa,
		B: float32(b) / fa,
		A: fa / 65535,
	}
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" (the leading
// '#' is optional).
func ParseHex(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var ch [4]uint32
	ch[3] = 255

	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			v, ok := parseHexDigits(hex[i : i+1])
			if !ok {
				return Color{}, ErrInvalidHex
			}
			ch[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(hex)/2; i++ {
			v, ok := parseHexDigits(hex[i*2 : i*2+2])
			if !ok {
				return Color{}, ErrInvalidHex
			}
			ch[i] = v
		}
	default:
		return Color{}, ErrInvalidHex
	}

	return Color{
		R: float32(ch[0]) / 255,
		G: float32(ch[1]) / 255,
		B: float32(ch[2]) / 255,
		A: float32(ch[3]) / 255,
	}, nil
}

func parseHexDigits(s string) (uint32, bool) {
	var v uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		v *= 16
		switch {
		case '0' <= c && c <= '9':
			v += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			v += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			v += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}

// Array returns the channels as [r, g, b, a].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// NRGBA converts to an 8-bit straight-alpha color, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// to8 clamps v to [0, 1] and rounds to the nearest 8-bit value.
func to8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
