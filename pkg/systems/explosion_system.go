package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/fireworks/internal/glyph"
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/types"
)

// GlyphSource rasterizes text into point offsets.
type GlyphSource interface {
	Rasterize(text string, sizePx float64) []glyph.Point
}

// ExplosionSystem turns a shell type into a batch of particles using the
// catalog's spread rule.
type ExplosionSystem struct {
	Catalog   *config.ShellCatalog
	Particles *ParticleSystem
	Glyphs    GlyphSource
	Rand      *rand.Rand

	// Scale is the device-pixel ratio applied to glyph font sizes.
	Scale float64
}

// NewExplosionSystem creates a new ExplosionSystem instance.
func NewExplosionSystem(catalog *config.ShellCatalog, particles *ParticleSystem, glyphs GlyphSource, rng *rand.Rand) *ExplosionSystem {
	return &ExplosionSystem{
		Catalog:   catalog,
		Particles: particles,
		Glyphs:    glyphs,
		Rand:      rng,
		Scale:     1,
	}
}

// Burst spawns the particles of one shell at (x, y) and appends them to out.
//
// count overrides the catalog count when > 0 (fountain emitters). payload is
// the text for glyph shells; an empty or unrenderable payload produces no
// particles.
func (es *ExplosionSystem) Burst(x, y float64, shell types.ShellType, color components.HSL, payload string, count int, origin components.Origin, out []*components.ParticleComponent) []*components.ParticleComponent {
	spec, ok := es.Catalog.Lookup(shell)
	if !ok {
		log.Printf("[ExplosionSystem] 未知弹型 %s，忽略爆炸", shell)
		return out
	}

	if spec.Spread.Kind == types.SpreadGlyph {
		return es.glyphBurst(x, y, spec, color, payload, origin, out)
	}

	if count <= 0 {
		count = spec.Count
	}

	// Power is drawn once per burst; individual speeds are power*sqrt(U).
	power := spec.Speed.Sample(es.Rand)

	lo, width := 0.0, 2*math.Pi
	if spec.Spread.Kind == types.SpreadArc {
		width = spec.Spread.Width * math.Pi / 180
		lo = spec.Spread.Center*math.Pi/180 - width/2
	}

	for i := 0; i < count; i++ {
		a := lo + es.Rand.Float64()*width
		s := math.Sqrt(es.Rand.Float64()) * power

		c := color
		if spec.HueJitter > 0 {
			c = color.WithHue(color.H + (es.Rand.Float64()*2-1)*spec.HueJitter)
		}

		out = append(out, es.Particles.Spawn(x, y, math.Cos(a)*s, math.Sin(a)*s, c, spec.Behavior, origin))
	}
	return out
}

func (es *ExplosionSystem) glyphBurst(x, y float64, spec config.ShellSpec, color components.HSL, payload string, origin components.Origin, out []*components.ParticleComponent) []*components.ParticleComponent {
	if es.Glyphs == nil || payload == "" {
		return out
	}

	scale := es.Scale
	if scale <= 0 {
		scale = 1
	}
	points := es.Glyphs.Rasterize(payload, spec.Glyph.FontSize*scale)
	if len(points) == 0 {
		log.Printf("[ExplosionSystem] 文字 %q 无可用字形，爆炸不产生形状粒子", payload)
		return out
	}

	k, j := spec.Glyph.VelocityScale, spec.Glyph.Jitter
	for _, pt := range points {
		vx := pt.X*k + (es.Rand.Float64()*2-1)*j
		vy := pt.Y*k + (es.Rand.Float64()*2-1)*j
		c := color
		if spec.HueJitter > 0 {
			c = color.WithHue(color.H + (es.Rand.Float64()*2-1)*spec.HueJitter)
		}
		out = append(out, es.Particles.Spawn(x, y, vx, vy, c, spec.Behavior, origin))
	}
	return out
}
