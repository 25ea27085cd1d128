package game

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// fogBlend mixes c toward the fog color by amount f in [0, 1].
func fogBlend(c, fog color.RGBA, f float64) color.RGBA {
	f = clamp01(f)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-f) + float64(b)*f))
	}
	return color.RGBA{R: mix(c.R, fog.R), G: mix(c.G, fog.G), B: mix(c.B, fog.B), A: c.A}
}

// brighten moves c toward white by amount in [0, 1].
func brighten(c color.RGBA, amount float64) color.RGBA {
	return fogBlend(c, color.RGBA{R: 255, G: 255, B: 255, A: c.A}, amount)
}

// withAlpha returns c with alpha a in [0, 1], premultiplied.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = clamp01(a)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as SS.s
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%04.1fs", d.Seconds())
}
