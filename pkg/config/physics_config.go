package config

import (
	"fmt"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/types"
	"gopkg.in/yaml.v3"
)

// PhysicsConfig 物理参数配置
//
// 包含火箭上升参数、各粒子行为的运动/衰减参数以及画面拖尾淡出强度。
// 所有速度单位为 像素/帧，按 60 FPS 调校。
//
// 配置文件位置: data/physics.yaml
type PhysicsConfig struct {
	// Rocket 火箭参数
	Rocket RocketPhysics `yaml:"rocket"`

	// Behaviors 行为名称 → 参数
	Behaviors map[string]BehaviorProfile `yaml:"behaviors"`

	// FadeAlpha 每帧覆盖的半透明擦除强度，越小拖尾越长
	FadeAlpha float64 `yaml:"fadeAlpha"`

	profiles map[types.Behavior]BehaviorProfile
}

// RocketPhysics 火箭上升参数
type RocketPhysics struct {
	// Gravity 每帧加到 vy 上的重力
	Gravity float64 `yaml:"gravity"`

	// ApexThreshold vy >= -ApexThreshold 即视为到达顶点
	ApexThreshold float64 `yaml:"apexThreshold"`

	// LaunchBoost 初速度乘数，补偿离散积分的高度损失
	LaunchBoost float64 `yaml:"launchBoost"`

	// LaunchJitterX 水平初速度随机范围（±）
	LaunchJitterX float64 `yaml:"launchJitterX"`

	// HorizontalDrag 每帧水平速度衰减系数
	HorizontalDrag float64 `yaml:"horizontalDrag"`

	// MineLaunchSpeed 地雷弹固定上升速度（与目标高度无关）
	MineLaunchSpeed float64 `yaml:"mineLaunchSpeed"`

	// TrailChance 每帧产生尾迹粒子的概率
	TrailChance float64 `yaml:"trailChance"`

	// Size 火箭头绘制半径
	Size float64 `yaml:"size"`
}

// BehaviorProfile 粒子行为参数
type BehaviorProfile struct {
	// Drag 每帧速度乘数，必须在 (0, 1) 内
	Drag float64 `yaml:"drag"`

	// Gravity 每帧加到 vy 上的重力偏置
	Gravity float64 `yaml:"gravity"`

	// Decay 透明度衰减范围，每个粒子构造时抽取一次
	Decay particle.Range `yaml:"decay"`

	// DeathThreshold 透明度 <= 此值时粒子死亡
	DeathThreshold float64 `yaml:"deathThreshold"`

	// TrailLength 保留的历史位置数量
	TrailLength int `yaml:"trailLength"`

	// ShrinkBelow 透明度低于此值开始缩小
	ShrinkBelow float64 `yaml:"shrinkBelow"`

	// ShrinkFactor 每帧缩小系数
	ShrinkFactor float64 `yaml:"shrinkFactor"`

	// FlickerChance 闪烁概率（仅 glitter）
	FlickerChance float64 `yaml:"flickerChance"`

	// Size 初始线宽
	Size particle.Range `yaml:"size"`
}

// LoadPhysicsConfig 加载物理参数配置
func LoadPhysicsConfig(path string) (*PhysicsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics config: %w", err)
	}
	return ParsePhysicsConfig(data)
}

// ParsePhysicsConfig 从内存中的 YAML 解析物理参数
func ParsePhysicsConfig(data []byte) (*PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性并建立行为索引
//
// 每种行为都必须配置；阻尼系数严格在 (0, 1) 内，否则粒子不会减速或会反向。
func (c *PhysicsConfig) Validate() error {
	r := c.Rocket
	if r.Gravity <= 0 {
		return fmt.Errorf("rocket gravity must be > 0, got %v", r.Gravity)
	}
	if r.ApexThreshold < 0 {
		return fmt.Errorf("rocket apexThreshold must be >= 0, got %v", r.ApexThreshold)
	}
	if r.LaunchBoost < 1 || r.LaunchBoost > 1.5 {
		return fmt.Errorf("rocket launchBoost must be in [1, 1.5], got %v", r.LaunchBoost)
	}
	if r.HorizontalDrag <= 0 || r.HorizontalDrag > 1 {
		return fmt.Errorf("rocket horizontalDrag must be in (0, 1], got %v", r.HorizontalDrag)
	}
	if r.MineLaunchSpeed <= 0 {
		return fmt.Errorf("rocket mineLaunchSpeed must be > 0, got %v", r.MineLaunchSpeed)
	}
	if r.TrailChance < 0 || r.TrailChance > 1 {
		return fmt.Errorf("rocket trailChance must be in [0, 1], got %v", r.TrailChance)
	}
	if c.FadeAlpha <= 0 || c.FadeAlpha > 1 {
		return fmt.Errorf("fadeAlpha must be in (0, 1], got %v", c.FadeAlpha)
	}

	profiles := make(map[types.Behavior]BehaviorProfile, len(c.Behaviors))
	for name, p := range c.Behaviors {
		b, err := types.ParseBehavior(name)
		if err != nil {
			return err
		}
		if p.Drag <= 0 || p.Drag >= 1 {
			return fmt.Errorf("behavior '%s': drag must be in (0, 1), got %v", name, p.Drag)
		}
		if p.Decay.Min <= 0 {
			return fmt.Errorf("behavior '%s': decay must be > 0, got %s", name, p.Decay)
		}
		if p.DeathThreshold < 0 || p.DeathThreshold >= 1 {
			return fmt.Errorf("behavior '%s': deathThreshold must be in [0, 1), got %v", name, p.DeathThreshold)
		}
		if p.TrailLength < 1 {
			return fmt.Errorf("behavior '%s': trailLength must be >= 1, got %d", name, p.TrailLength)
		}
		if p.ShrinkFactor <= 0 || p.ShrinkFactor > 1 {
			return fmt.Errorf("behavior '%s': shrinkFactor must be in (0, 1], got %v", name, p.ShrinkFactor)
		}
		if p.FlickerChance < 0 || p.FlickerChance > 1 {
			return fmt.Errorf("behavior '%s': flickerChance must be in [0, 1], got %v", name, p.FlickerChance)
		}
		if p.Size.Min <= 0 {
			return fmt.Errorf("behavior '%s': size must be > 0, got %s", name, p.Size)
		}
		profiles[b] = p
	}

	for _, b := range types.AllBehaviors() {
		if _, ok := profiles[b]; !ok {
			return fmt.Errorf("behavior '%s' is not configured", b)
		}
	}

	c.profiles = profiles
	return nil
}

// Profile 返回行为参数；未知行为返回 normal 的参数
func (c *PhysicsConfig) Profile(b types.Behavior) BehaviorProfile {
	if c.profiles == nil {
		_ = c.Validate()
	}
	if p, ok := c.profiles[b]; ok {
		return p
	}
	return c.profiles[types.BehaviorNormal]
}

// DefaultPhysicsConfig 返回内置物理参数，与 data/physics.yaml 一致
func DefaultPhysicsConfig() *PhysicsConfig {
	normal := BehaviorProfile{
		Drag:         0.95,
		Gravity:      0.035,
		Decay:        particle.Range{Min: 0.004, Max: 0.010},
		TrailLength:  3,
		ShrinkBelow:  0.2,
		ShrinkFactor: 0.96,
		Size:         particle.Range{Min: 2, Max: 2},
	}
	heavy := normal
	heavy.Drag = 0.97
	heavy.Gravity = 0.08
	heavy.Decay = particle.Range{Min: 0.006, Max: 0.012}
	heavy.TrailLength = 5

	glitter := normal
	glitter.Drag = 0.94
	glitter.Gravity = 0.03
	glitter.Decay = particle.Range{Min: 0.006, Max: 0.012}
	glitter.DeathThreshold = 0.05
	glitter.FlickerChance = 0.3
	glitter.Size = particle.Range{Min: 1.5, Max: 2.5}

	fountain := normal
	fountain.Drag = 0.98
	fountain.Gravity = 0.06
	fountain.Decay = particle.Range{Min: 0.012, Max: 0.02}
	fountain.TrailLength = 4
	fountain.Size = particle.Range{Min: 1.5, Max: 1.5}

	trail := normal
	trail.Drag = 0.8
	trail.Gravity = 0.01
	trail.Decay = particle.Range{Min: 0.05, Max: 0.08}
	trail.DeathThreshold = 0.05
	trail.TrailLength = 2
	trail.Size = particle.Range{Min: 1, Max: 1}

	c := &PhysicsConfig{
		Rocket: RocketPhysics{
			Gravity:         0.12,
			ApexThreshold:   0.5,
			LaunchBoost:     1.02,
			LaunchJitterX:   0.3,
			HorizontalDrag:  0.99,
			MineLaunchSpeed: 14,
			TrailChance:     0.35,
			Size:            2,
		},
		Behaviors: map[string]BehaviorProfile{
			"normal":   normal,
			"heavy":    heavy,
			"glitter":  glitter,
			"text":     normal,
			"fountain": fountain,
			"trail":    trail,
		},
		FadeAlpha: 0.15,
	}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("built-in physics config is invalid: %v", err))
	}
	return c
}
