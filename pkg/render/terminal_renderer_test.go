package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

var red = components.HSL{H: 0, S: 100, L: 50}

func TestTerminalRenderer_AdditiveAccumulation(t *testing.T) {
	tr := NewTerminalRenderer(newSimScreen(t, 20, 10), 8, 16)

	p := &components.ParticleComponent{X: 20, Y: 20, Color: red, Opacity: 0.4, Behavior: types.BehaviorNormal}
	tr.BeginAdditive()
	tr.DrawParticle(p)
	tr.DrawParticle(p)

	r, g, b := tr.Sample(2, 2)
	assert.InDelta(t, 0.8, r, 1e-5)
	assert.InDelta(t, 0, g, 1e-5)
	assert.InDelta(t, 0, b, 1e-5)
}

func TestTerminalRenderer_FadeMultiplies(t *testing.T) {
	tr := NewTerminalRenderer(newSimScreen(t, 20, 10), 8, 16)
	tr.DrawParticle(&components.ParticleComponent{X: 4, Y: 4, Color: red, Opacity: 1})

	tr.Fade(0.25)
	r, _, _ := tr.Sample(0, 0)
	assert.InDelta(t, 0.75, r, 1e-5)

	tr.Fade(1)
	r, _, _ = tr.Sample(0, 0)
	assert.Zero(t, r)
}

func TestTerminalRenderer_PolylineCoversSegment(t *testing.T) {
	tr := NewTerminalRenderer(newSimScreen(t, 20, 10), 8, 16)
	p := &components.ParticleComponent{
		X: 8*10 + 1, Y: 8*3 + 1,
		History: []components.Vec2{{X: 1, Y: 8*3 + 1}},
		Color:   red, Opacity: 1,
	}
	tr.DrawParticle(p)

	for gx := 0; gx <= 10; gx++ {
		r, _, _ := tr.Sample(gx, 3)
		assert.InDelta(t, 1, r, 1e-5, "sample %d", gx)
	}
	r, _, _ := tr.Sample(11, 3)
	assert.Zero(t, r)
}

func TestTerminalRenderer_EndFrameWritesCells(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	tr := NewTerminalRenderer(screen, 8, 16)

	// 上半格 (gy=2) 与下半格 (gy=3) 都属于第 1 行
	tr.DrawParticle(&components.ParticleComponent{X: 8*4 + 1, Y: 8*2 + 1, Color: red, Opacity: 1})
	tr.EndFrame()

	mainc, _, style, _ := screen.GetContent(4, 1)
	assert.Equal(t, halfBlock, mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
}

func TestTerminalRenderer_OutOfBoundsIgnored(t *testing.T) {
	tr := NewTerminalRenderer(newSimScreen(t, 4, 4), 8, 16)
	assert.NotPanics(t, func() {
		tr.DrawParticle(&components.ParticleComponent{
			X: -50, Y: 900,
			History: []components.Vec2{{X: 500, Y: -40}},
			Color:   red, Opacity: 1,
		})
		tr.DrawRocket(&components.RocketComponent{X: 1e6, Y: -1e6, Color: red})
		tr.EndFrame()
	})
}

func TestTerminalRenderer_Resize(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	tr := NewTerminalRenderer(screen, 8, 16)
	w, h := tr.ViewportFor(10, 5)
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 80.0, h)

	screen.SetSize(30, 12)
	tr.Resize(240, 192)
	tr.DrawParticle(&components.ParticleComponent{X: 8*25 + 1, Y: 8*20 + 1, Color: red, Opacity: 1})
	r, _, _ := tr.Sample(25, 20)
	assert.InDelta(t, 1, r, 1e-5)
}
