package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushHistory_Bounded(t *testing.T) {
	p := &ParticleComponent{}
	for i := 0; i < 10; i++ {
		p.X, p.Y = float64(i), float64(i*2)
		p.PushHistory(4)
	}

	assert.Len(t, p.History, 4)
	assert.Equal(t, Vec2{X: 6, Y: 12}, p.History[0], "oldest retained sample")
	assert.Equal(t, Vec2{X: 9, Y: 18}, p.History[3])
	assert.Equal(t, Vec2{X: 6, Y: 12}, p.Tail())
}

func TestPushHistory_ZeroLimit(t *testing.T) {
	p := &ParticleComponent{X: 3, Y: 4}
	p.PushHistory(0)
	assert.Empty(t, p.History)
	assert.Equal(t, Vec2{X: 3, Y: 4}, p.Tail())
}

func TestHSL_Conversion(t *testing.T) {
	tests := []struct {
		name    string
		c       HSL
		r, g, b uint8
	}{
		{"white", HSL{H: 0, S: 0, L: 100}, 255, 255, 255},
		{"red", HSL{H: 0, S: 100, L: 50}, 255, 0, 0},
		{"wrapped red", HSL{H: 360, S: 100, L: 50}, 255, 0, 0},
		{"green", HSL{H: 120, S: 100, L: 50}, 0, 255, 0},
		{"over-range lightness", HSL{H: 45, S: 100, L: 130}, 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.RGBA(1)
			assert.Equal(t, tt.r, got.R)
			assert.Equal(t, tt.g, got.G)
			assert.Equal(t, tt.b, got.B)
			assert.Equal(t, uint8(255), got.A)
		})
	}
}

func TestHSL_WithHueWraps(t *testing.T) {
	assert.InDelta(t, 350, HSL{}.WithHue(-10).H, 1e-9)
	assert.InDelta(t, 15, HSL{}.WithHue(375).H, 1e-9)
}

func TestHSL_RGBAPremultiplied(t *testing.T) {
	c := HSL{H: 0, S: 0, L: 100}.RGBA(0.5)
	assert.Equal(t, uint8(127), c.R)
	assert.Equal(t, uint8(127), c.A)
}
