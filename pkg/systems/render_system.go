package systems

import "github.com/gonewx/fireworks/pkg/components"

// Renderer is the drawing surface boundary.
//
// Per frame the simulation calls Fade once, then BeginAdditive, then one
// Draw call per live entity (all rockets before all particles), then
// EndFrame. The fade must not use additive blending, otherwise trails never
// clear.
type Renderer interface {
	// Fade erases a fraction alpha of everything drawn so far.
	Fade(alpha float64)
	// BeginAdditive switches subsequent draws to additive blending.
	BeginAdditive()
	DrawRocket(r *components.RocketComponent)
	// DrawParticle strokes the particle's history polyline; glitter
	// particles with Sparkle set also get a small cross.
	DrawParticle(p *components.ParticleComponent)
	EndFrame()
}

// NopRenderer discards all drawing. Used by headless runs.
type NopRenderer struct{}

func (NopRenderer) Fade(float64) {}

func (NopRenderer) BeginAdditive() {}

func (NopRenderer) DrawRocket(*components.RocketComponent) {}

func (NopRenderer) DrawParticle(*components.ParticleComponent) {}

func (NopRenderer) EndFrame() {}

// RenderSystem issues the ordered draw calls for one frame.
type RenderSystem struct {
	Renderer  Renderer
	Particles *ParticleSystem
	FadeAlpha float64
}

// NewRenderSystem creates a new RenderSystem instance.
func NewRenderSystem(r Renderer, particles *ParticleSystem, fadeAlpha float64) *RenderSystem {
	if r == nil {
		r = NopRenderer{}
	}
	return &RenderSystem{
		Renderer:  r,
		Particles: particles,
		FadeAlpha: fadeAlpha,
	}
}

// Composite fades the surface then draws live rockets and live particles
// additively. EndFrame is left to the caller, which purges first.
func (rs *RenderSystem) Composite(rockets []*components.RocketComponent, particles []*components.ParticleComponent) {
	rs.Renderer.Fade(rs.FadeAlpha)
	rs.Renderer.BeginAdditive()

	for _, r := range rockets {
		if !r.Exploded {
			rs.Renderer.DrawRocket(r)
		}
	}
	for _, p := range particles {
		if rs.Particles.Alive(p) {
			rs.Renderer.DrawParticle(p)
		}
	}
}

// StrokePoints returns the polyline for a particle, oldest sample first and
// the current position last.
func StrokePoints(p *components.ParticleComponent) []components.Vec2 {
	pts := make([]components.Vec2, 0, len(p.History)+1)
	pts = append(pts, p.History...)
	return append(pts, components.Vec2{X: p.X, Y: p.Y})
}

// RocketTail returns the start of the faint streak drawn behind a rocket head.
func RocketTail(r *components.RocketComponent) components.Vec2 {
	return components.Vec2{X: r.X - r.VX*4, Y: r.Y - r.VY*4}
}
