package show

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gonewx/fireworks/internal/glyph"
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/types"
)

// ErrStopped is returned by Step once the simulation has been stopped.
var ErrStopped = errors.New("show: simulation stopped")

// Options configures a Simulation. Nil configs fall back to the built-in
// defaults.
type Options struct {
	Width, Height float64
	// Scale is the device-pixel ratio; it only affects glyph sizes.
	Scale float64

	Catalog *config.ShellCatalog
	Physics *config.PhysicsConfig
	Script  *config.ShowScript

	Renderer systems.Renderer
	Glyphs   systems.GlyphSource

	// Seed for the simulation's random source; 0 seeds from the clock.
	Seed int64
}

// Resizer is implemented by renderers that own a size-dependent surface.
type Resizer interface {
	Resize(width, height int)
}

type resizeRequest struct {
	width, height, scale float64
}

// Simulation is the explicit show context. It owns the frame counter and
// the rocket and particle collections; only Step mutates them.
//
// Step must be called from a single goroutine. Resize and Stop may be
// called from any goroutine.
type Simulation struct {
	frame     int
	rockets   []*components.RocketComponent
	particles []*components.ParticleComponent

	width, height, scale float64

	script   *config.ShowScript
	director *Director
	signals  *Signals

	particleSys  *systems.ParticleSystem
	explosionSys *systems.ExplosionSystem
	rocketSys    *systems.RocketSystem
	renderSys    *systems.RenderSystem
	renderer     systems.Renderer

	mu      sync.Mutex
	pending *resizeRequest

	stopped   atomic.Bool
	completed bool
	err       error

	stats Stats
}

// New builds a simulation. Configs passed in are validated again so a
// hand-built script cannot bypass load-time checks.
func New(opts Options) (*Simulation, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %.0fx%.0f", opts.Width, opts.Height)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = config.DefaultShellCatalog()
	} else if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shell catalog: %w", err)
	}
	physics := opts.Physics
	if physics == nil {
		physics = config.DefaultPhysicsConfig()
	} else if err := physics.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}
	script := opts.Script
	if script == nil {
		script = config.DefaultShowScript()
	} else if err := script.Validate(catalog); err != nil {
		return nil, fmt.Errorf("invalid show script: %w", err)
	}

	glyphs := opts.Glyphs
	if glyphs == nil {
		r, err := glyph.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load glyph font: %w", err)
		}
		glyphs = r
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = systems.NopRenderer{}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	particleSys := systems.NewParticleSystem(physics, rng)
	explosionSys := systems.NewExplosionSystem(catalog, particleSys, glyphs, rng)
	explosionSys.Scale = opts.Scale
	rocketSys := systems.NewRocketSystem(physics, particleSys, explosionSys, rng)

	signals := NewSignals()
	s := &Simulation{
		width:        opts.Width,
		height:       opts.Height,
		scale:        opts.Scale,
		script:       script,
		director:     NewDirector(script, signals),
		signals:      signals,
		particleSys:  particleSys,
		explosionSys: explosionSys,
		rocketSys:    rocketSys,
		renderSys:    systems.NewRenderSystem(renderer, particleSys, physics.FadeAlpha),
		renderer:     renderer,
		stats:        newStats(),
	}

	log.Printf("[Simulation] 演出 %q: %d 条时间线条目, 结束帧 %d, 视口 %.0fx%.0f@%.1fx",
		script.Name, len(script.Entries), script.EndFrame, opts.Width, opts.Height, opts.Scale)
	return s, nil
}

// Signals returns the observer registries.
func (s *Simulation) Signals() *Signals {
	return s.signals
}

// Resize queues a viewport change applied at the start of the next Step.
// A non-positive scale keeps the current one.
func (s *Simulation) Resize(width, height, scale float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &resizeRequest{width: width, height: height, scale: scale}
}

// Stop cancels all future frames. It is safe to call more than once.
func (s *Simulation) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		log.Printf("[Simulation] 已停止 (帧 %d)", s.frame)
	}
}

// Stopped reports whether Stop was called or a frame failed.
func (s *Simulation) Stopped() bool {
	return s.stopped.Load()
}

// Err returns the error that stopped the simulation, if any.
func (s *Simulation) Err() error {
	return s.err
}

// Completed reports whether the script has ended and every entity is gone.
func (s *Simulation) Completed() bool {
	return s.completed
}

// EndFrame returns the script's last scheduled frame.
func (s *Simulation) EndFrame() int {
	return s.director.EndFrame()
}

// Frame returns the number of completed frames.
func (s *Simulation) Frame() int {
	return s.frame
}

// Size returns the current viewport.
func (s *Simulation) Size() (width, height float64) {
	return s.width, s.height
}

// Rockets returns the live rockets. The slice must not be modified.
func (s *Simulation) Rockets() []*components.RocketComponent {
	return s.rockets
}

// Particles returns the live particles. The slice must not be modified.
func (s *Simulation) Particles() []*components.ParticleComponent {
	return s.particles
}

// Stats returns a snapshot of the counters.
func (s *Simulation) Stats() Stats {
	st := s.stats.clone()
	st.Frame = s.frame
	st.LiveRockets = len(s.rockets)
	st.LiveParticles = len(s.particles)
	return st
}

// Step runs exactly one frame. A panic inside the frame stops the
// simulation and is returned as an error; the frame is not retried.
func (s *Simulation) Step() (err error) {
	if s.stopped.Load() {
		return ErrStopped
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame %d failed: %v", s.frame, r)
			s.err = err
			log.Printf("[Simulation] %v", err)
			s.Stop()
		}
	}()

	s.applyResize()

	s.frame++

	spawnedFrom := len(s.particles)
	for _, cmd := range s.director.Tick(s.frame) {
		s.apply(cmd)
	}

	for _, r := range s.rockets {
		var exploded bool
		s.particles, exploded = s.rocketSys.Update(r, s.particles)
		if exploded {
			s.stats.RocketsExploded++
			s.stats.ExplodedByLaunchFrame[r.LaunchFrame]++
			s.signals.emitCue(types.CueExplosion)
		}
	}
	s.stats.countSpawned(s.particles[spawnedFrom:])

	s.particleSys.UpdateAll(s.particles)

	s.renderSys.Composite(s.rockets, s.particles)

	s.rockets = s.rocketSys.Purge(s.rockets)
	s.particles = s.particleSys.Purge(s.particles)
	if n := len(s.particles); n > s.stats.PeakParticles {
		s.stats.PeakParticles = n
	}

	s.renderer.EndFrame()

	if !s.completed && s.frame >= s.director.EndFrame() && len(s.rockets) == 0 && len(s.particles) == 0 {
		s.completed = true
		log.Printf("[Simulation] 演出结束 (帧 %d, 发射 %d, 爆炸 %d)", s.frame, s.stats.RocketsLaunched, s.stats.RocketsExploded)
		s.signals.emitComplete()
	}
	return nil
}

func (s *Simulation) applyResize() {
	s.mu.Lock()
	req := s.pending
	s.pending = nil
	s.mu.Unlock()

	if req == nil {
		return
	}
	s.width, s.height = req.width, req.height
	if req.scale > 0 {
		s.scale = req.scale
		s.explosionSys.Scale = req.scale
	}
	if rz, ok := s.renderer.(Resizer); ok {
		rz.Resize(int(req.width), int(req.height))
	}
	log.Printf("[Simulation] 视口调整为 %.0fx%.0f@%.1fx", s.width, s.height, s.scale)
}

func (s *Simulation) apply(cmd Command) {
	switch c := cmd.(type) {
	case LaunchCommand:
		r := s.rocketSys.Launch(systems.LaunchParams{
			OriginX:  c.X * s.width,
			OriginY:  s.height,
			TargetY:  c.Target * s.height,
			Color:    c.Color,
			Shell:    c.Shell,
			Payload:  c.Text,
			AngleDeg: c.AngleDeg,
			Frame:    s.frame,
		})
		s.rockets = append(s.rockets, r)
		s.stats.RocketsLaunched++
		s.stats.LaunchesByFrame[s.frame]++
		s.signals.emitCue(types.CueLaunch)
	case FountainCommand:
		s.particles = s.explosionSys.Burst(c.X*s.width, c.Y*s.height, c.Shell, c.Color, "", c.Count, components.OriginFountain, s.particles)
	default:
		panic(fmt.Sprintf("unknown command %T", cmd))
	}
}
