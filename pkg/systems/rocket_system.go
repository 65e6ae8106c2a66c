package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/types"
)

// RocketSystem launches rockets, integrates their ascent and triggers the
// burst.
//
// A rocket explodes when vy >= -ApexThreshold (the apex, the primary
// trigger) or y <= TargetY (the safety bound). The Exploded flag guards the
// burst so every rocket explodes exactly once.
type RocketSystem struct {
	Physics    *config.PhysicsConfig
	Particles  *ParticleSystem
	Explosions *ExplosionSystem
	Rand       *rand.Rand

	nextID int
}

// NewRocketSystem creates a new RocketSystem instance.
func NewRocketSystem(physics *config.PhysicsConfig, particles *ParticleSystem, explosions *ExplosionSystem, rng *rand.Rand) *RocketSystem {
	return &RocketSystem{
		Physics:    physics,
		Particles:  particles,
		Explosions: explosions,
		Rand:       rng,
	}
}

// LaunchParams are in viewport pixels.
type LaunchParams struct {
	OriginX, OriginY float64
	TargetY          float64
	Color            components.HSL
	Shell            types.ShellType
	Payload          string
	// AngleDeg tilts the launch; positive leans right.
	AngleDeg float64
	Frame    int
}

// LaunchVelocity returns the initial vertical velocity.
//
// v0 = -sqrt(2*g*h) stops the rocket exactly at the target height under
// gravity; LaunchBoost makes up the height lost to discrete integration.
// Mines launch at a fixed speed.
func (rs *RocketSystem) LaunchVelocity(originY, targetY float64, shell types.ShellType) float64 {
	rp := rs.Physics.Rocket
	if shell == types.ShellMine {
		return -rp.MineLaunchSpeed
	}
	rise := math.Max(0, originY-targetY)
	return -math.Sqrt(2*rp.Gravity*rise) * rp.LaunchBoost
}

// Launch creates a rocket.
func (rs *RocketSystem) Launch(p LaunchParams) *components.RocketComponent {
	rp := rs.Physics.Rocket
	vy := rs.LaunchVelocity(p.OriginY, p.TargetY, p.Shell)

	vx := 0.0
	if rp.LaunchJitterX > 0 {
		vx = (rs.Rand.Float64()*2 - 1) * rp.LaunchJitterX
	}
	if p.AngleDeg != 0 {
		vx += math.Abs(vy) * math.Tan(p.AngleDeg*math.Pi/180)
	}

	rs.nextID++
	return &components.RocketComponent{
		ID:          rs.nextID,
		X:           p.OriginX,
		Y:           p.OriginY,
		VX:          vx,
		VY:          vy,
		TargetY:     p.TargetY,
		Color:       p.Color,
		Shell:       p.Shell,
		Payload:     p.Payload,
		LaunchFrame: p.Frame,
	}
}

// Update advances a rocket by one frame, appending trail and burst
// particles to out. exploded reports whether it burst on this frame.
// Exploded rockets are not updated.
func (rs *RocketSystem) Update(r *components.RocketComponent, out []*components.ParticleComponent) (_ []*components.ParticleComponent, exploded bool) {
	if r.Exploded {
		return out, false
	}
	rp := rs.Physics.Rocket

	r.VY += rp.Gravity
	r.VX *= rp.HorizontalDrag
	r.X += r.VX
	r.Y += r.VY

	if rp.TrailChance > 0 && rs.Rand.Float64() < rp.TrailChance {
		vx := -r.VX*0.1 + (rs.Rand.Float64()*2-1)*0.3
		vy := -r.VY*0.1 + rs.Rand.Float64()*0.3
		out = append(out, rs.Particles.Spawn(r.X, r.Y, vx, vy, r.Color, types.BehaviorTrail, components.OriginTrail))
	}

	if rs.ShouldExplode(r) {
		return rs.Explode(r, out)
	}
	return out, false
}

// ShouldExplode reports whether either trigger holds.
func (rs *RocketSystem) ShouldExplode(r *components.RocketComponent) bool {
	return r.VY >= -rs.Physics.Rocket.ApexThreshold || r.Y <= r.TargetY
}

// Explode bursts the rocket; it is a no-op once exploded.
func (rs *RocketSystem) Explode(r *components.RocketComponent, out []*components.ParticleComponent) ([]*components.ParticleComponent, bool) {
	if r.Exploded {
		return out, false
	}
	r.Exploded = true
	return rs.Explosions.Burst(r.X, r.Y, r.Shell, r.Color, r.Payload, 0, components.OriginExplosion, out), true
}

// Purge removes exploded rockets in place.
func (rs *RocketSystem) Purge(rockets []*components.RocketComponent) []*components.RocketComponent {
	live := rockets[:0]
	for _, r := range rockets {
		if !r.Exploded {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(rockets); i++ {
		rockets[i] = nil
	}
	return live
}
