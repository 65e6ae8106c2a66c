package components

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL colour with hue in degrees and saturation/lightness in percent,
// the notation used by the show script.
type HSL struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	L float64 `yaml:"l"`
}

// WithHue returns a copy with the hue replaced and wrapped into [0, 360).
func (c HSL) WithHue(h float64) HSL {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c.H = h
	return c
}

// WithLightness returns a copy with lightness replaced.
func (c HSL) WithLightness(l float64) HSL {
	c.L = l
	return c
}

// Colorful converts to a go-colorful colour, clamped into gamut.
func (c HSL) Colorful() colorful.Color {
	return colorful.Hsl(c.WithHue(c.H).H, clampPercent(c.S)/100, clampPercent(c.L)/100).Clamped()
}

// RGBFloat returns linear channel values in [0, 1] for vertex colouring.
func (c HSL) RGBFloat() (r, g, b float32) {
	cc := c.Colorful()
	return float32(cc.R), float32(cc.G), float32(cc.B)
}

// RGBA returns the colour premultiplied by alpha.
func (c HSL) RGBA(alpha float64) color.RGBA {
	r, g, b := c.Colorful().RGB255()
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
