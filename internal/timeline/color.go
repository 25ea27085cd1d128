package timeline

import (
	"image/color"
	"math"
)

// Colors returns the face and glow colors for a hue. The glow uses the
// complementary hue at a lower lightness.
func (c Config) Colors(hue float64) (primary, glow color.RGBA) {
	primary = HSL(hue, 1, c.PrimaryLightness)
	glow = HSL(math.Mod(hue+180, 360), 1, c.GlowLightness)
	return primary, glow
}

// HSL converts hue (degrees), saturation and lightness (0-1) to an opaque
// RGBA color.
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 0xff,
	}
}
