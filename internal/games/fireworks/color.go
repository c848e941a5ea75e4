package fireworks

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads a "#rrggbb" colour, falling back to opaque white.
func ParseColor(hex string) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// RandomColor returns a fully saturated colour with a random hue.
func RandomColor(rng *rand.Rand) color.NRGBA {
	r, g, b := colorful.Hsl(rng.Float64()*360, 1, 0.5).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
