package components

import "github.com/gonewx/fireworks/pkg/types"

// Origin records which mechanism created a particle.
type Origin int

const (
	OriginExplosion Origin = iota
	OriginTrail
	OriginFountain
)

// Vec2 is a screen-space position sample.
type Vec2 struct {
	X, Y float64
}

// ParticleComponent is a single point-mass spark.
//
// Particles are created by explosions, rocket trails and fountain emitters,
// and are owned by the simulation's particle slice. The ParticleSystem
// integrates them once per frame; the simulation purges them once their
// opacity reaches the behaviour's death threshold.
//
// This is a pure data component - physics lives in systems.ParticleSystem.
type ParticleComponent struct {
	// Position and velocity (像素, 像素/帧)
	X, Y   float64
	VX, VY float64

	// History 最近的位置采样，最旧的在前，长度受行为的 TrailLength 限制
	History []Vec2

	// Color (HSL, 色相为度, 饱和度/亮度为百分比)
	Color HSL
	// BaseLightness 闪烁结束后恢复的亮度
	BaseLightness float64

	// Opacity in [0, 1]; never increases after construction.
	Opacity float64
	// Decay 每帧透明度减少量，构造时抽取一次
	Decay float64

	Size     float64
	Behavior types.Behavior

	// Sparkle 闪烁状态（仅 glitter 行为）
	Sparkle bool

	Origin Origin
	// Age 已存活的帧数
	Age int
}

// PushHistory records a position, dropping the oldest sample beyond limit.
func (p *ParticleComponent) PushHistory(limit int) {
	if limit <= 0 {
		p.History = p.History[:0]
		return
	}
	if len(p.History) >= limit {
		copy(p.History, p.History[len(p.History)-limit+1:])
		p.History = p.History[:limit-1]
	}
	p.History = append(p.History, Vec2{X: p.X, Y: p.Y})
}

// Tail returns the oldest retained position, or the current one without history.
func (p *ParticleComponent) Tail() Vec2 {
	if len(p.History) == 0 {
		return Vec2{X: p.X, Y: p.Y}
	}
	return p.History[0]
}
