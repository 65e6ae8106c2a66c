package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/types"
)

// ParticleSystem constructs and integrates sparks.
//
// Each frame a particle goes through, in order:
//  1. push its position into the bounded history
//  2. drag and gravity bias on velocity (glitter also flickers)
//  3. semi-implicit Euler position step
//  4. opacity decay by its construction-time rate
//  5. shrink once opacity falls below the behaviour's threshold
//
// The system holds no particles; the simulation owns the slice.
type ParticleSystem struct {
	Physics *config.PhysicsConfig
	Rand    *rand.Rand
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(physics *config.PhysicsConfig, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		Physics: physics,
		Rand:    rng,
	}
}

// Spawn creates a particle. Decay and size are drawn once from the
// behaviour profile and never re-rolled.
func (ps *ParticleSystem) Spawn(x, y, vx, vy float64, color components.HSL, b types.Behavior, origin components.Origin) *components.ParticleComponent {
	profile := ps.Physics.Profile(b)
	return &components.ParticleComponent{
		X:             x,
		Y:             y,
		VX:            vx,
		VY:            vy,
		History:       make([]components.Vec2, 0, profile.TrailLength),
		Color:         color,
		BaseLightness: color.L,
		Opacity:       1,
		Decay:         profile.Decay.Sample(ps.Rand),
		Size:          profile.Size.Sample(ps.Rand),
		Behavior:      b,
		Origin:        origin,
	}
}

// Update advances one particle by one frame.
func (ps *ParticleSystem) Update(p *components.ParticleComponent) {
	profile := ps.Physics.Profile(p.Behavior)

	p.PushHistory(profile.TrailLength)

	p.VX *= profile.Drag
	p.VY *= profile.Drag
	p.VY += profile.Gravity

	if profile.FlickerChance > 0 {
		if ps.Rand.Float64() < profile.FlickerChance {
			p.Sparkle = true
			p.Color.L = 100
		} else {
			p.Sparkle = false
			p.Color.L = p.BaseLightness
		}
	}

	p.X += p.VX
	p.Y += p.VY

	p.Opacity = math.Max(0, p.Opacity-p.Decay)

	if p.Opacity < profile.ShrinkBelow {
		p.Size *= profile.ShrinkFactor
	}

	p.Age++
}

// UpdateAll advances every particle in the slice.
func (ps *ParticleSystem) UpdateAll(particles []*components.ParticleComponent) {
	for _, p := range particles {
		ps.Update(p)
	}
}

// Alive reports whether a particle is still above its death threshold.
func (ps *ParticleSystem) Alive(p *components.ParticleComponent) bool {
	return p.Opacity > ps.Physics.Profile(p.Behavior).DeathThreshold
}

// Purge removes dead particles in place and returns the shortened slice.
func (ps *ParticleSystem) Purge(particles []*components.ParticleComponent) []*components.ParticleComponent {
	live := particles[:0]
	for _, p := range particles {
		if ps.Alive(p) {
			live = append(live, p)
		}
	}
	// Drop references held by the tail so purged particles can be collected.
	for i := len(live); i < len(particles); i++ {
		particles[i] = nil
	}
	return live
}
