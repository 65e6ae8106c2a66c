package config

import (
	"fmt"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/types"
	"gopkg.in/yaml.v3"
)

// ShellCatalog 烟花弹目录
//
// 将每种弹型映射到爆炸参数（粒子数量、初速度范围、角度分布、粒子行为、色相抖动）。
// 加载后不可修改，是纯查找表。
//
// 配置文件位置: data/shells.yaml
type ShellCatalog struct {
	Shells []ShellSpec `yaml:"shells"`

	byType map[types.ShellType]ShellSpec
}

// ShellSpec 单个弹型的爆炸参数
type ShellSpec struct {
	// Type 弹型
	Type types.ShellType `yaml:"type"`

	// Count 爆炸产生的粒子数量（文字弹由字形决定，此值忽略）
	Count int `yaml:"count"`

	// Speed 爆炸力度范围，每次爆炸抽取一次 power，粒子速度为 power*sqrt(U)
	Speed particle.Range `yaml:"speed"`

	// Spread 角度分布
	Spread SpreadSpec `yaml:"spread"`

	// Behavior 生成粒子的行为
	Behavior types.Behavior `yaml:"behavior"`

	// HueJitter 色相随机偏移（度，±）
	HueJitter float64 `yaml:"hueJitter"`

	// Glyph 文字弹参数，仅 spread=glyph 时使用
	Glyph *GlyphSpec `yaml:"glyph,omitempty"`
}

// SpreadSpec 角度分布
//
// 角度使用屏幕坐标（y 向下）：270° 指向正上方，90° 指向正下方。
type SpreadSpec struct {
	Kind types.SpreadKind `yaml:"kind"`
	// Center 弧线中心角（度）
	Center float64 `yaml:"center"`
	// Width 弧线总宽度（度）
	Width float64 `yaml:"width"`
}

// GlyphSpec 文字弹参数
type GlyphSpec struct {
	// FontSize 栅格化字号（逻辑像素，会乘以设备像素比）
	FontSize float64 `yaml:"fontSize"`
	// VelocityScale 偏移量到初速度的缩放系数
	VelocityScale float64 `yaml:"velocityScale"`
	// Jitter 初速度随机抖动（±）
	Jitter float64 `yaml:"jitter"`
}

// LoadShellCatalog 加载烟花弹目录
//
// 参数:
//   - path: 配置文件路径（如 "data/shells.yaml"）
//
// 返回:
//   - *ShellCatalog: 加载并验证后的目录
//   - error: 读取、解析或验证失败时返回错误
func LoadShellCatalog(path string) (*ShellCatalog, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shell catalog: %w", err)
	}
	return ParseShellCatalog(data)
}

// ParseShellCatalog 从内存中的 YAML 解析烟花弹目录
func ParseShellCatalog(data []byte) (*ShellCatalog, error) {
	var catalog ShellCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse shell catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shell catalog: %w", err)
	}

	return &catalog, nil
}

// Validate 验证目录有效性并建立索引
//
// 检查：
//   - 弹型已知且不重复
//   - 非文字弹粒子数量 > 0，力度范围非负且 min <= max
//   - 弧形分布宽度在 (0, 360] 内
//   - 文字弹必须配置 glyph 参数
func (c *ShellCatalog) Validate() error {
	if len(c.Shells) == 0 {
		return fmt.Errorf("catalog has no shells")
	}

	index := make(map[types.ShellType]ShellSpec, len(c.Shells))
	for i, s := range c.Shells {
		if s.Type == types.ShellUnknown {
			return fmt.Errorf("shell #%d: missing type", i)
		}
		if _, dup := index[s.Type]; dup {
			return fmt.Errorf("shell '%s': duplicate entry", s.Type)
		}
		if s.Behavior == types.BehaviorUnknown {
			return fmt.Errorf("shell '%s': missing behavior", s.Type)
		}
		if s.HueJitter < 0 {
			return fmt.Errorf("shell '%s': hueJitter must be >= 0, got %.1f", s.Type, s.HueJitter)
		}

		switch s.Spread.Kind {
		case types.SpreadGlyph:
			if s.Glyph == nil {
				return fmt.Errorf("shell '%s': glyph spread requires glyph settings", s.Type)
			}
			if s.Glyph.FontSize <= 0 {
				return fmt.Errorf("shell '%s': glyph fontSize must be > 0", s.Type)
			}
			if s.Glyph.VelocityScale <= 0 {
				return fmt.Errorf("shell '%s': glyph velocityScale must be > 0", s.Type)
			}
			if s.Glyph.Jitter < 0 {
				return fmt.Errorf("shell '%s': glyph jitter must be >= 0", s.Type)
			}
		case types.SpreadArc:
			if s.Spread.Width <= 0 || s.Spread.Width > 360 {
				return fmt.Errorf("shell '%s': arc width must be in (0, 360], got %.1f", s.Type, s.Spread.Width)
			}
			fallthrough
		default:
			if s.Count <= 0 {
				return fmt.Errorf("shell '%s': count must be > 0, got %d", s.Type, s.Count)
			}
			if s.Speed.Min < 0 || s.Speed.Max <= 0 {
				return fmt.Errorf("shell '%s': speed range %s must be positive", s.Type, s.Speed)
			}
			if s.Speed.Max < s.Speed.Min {
				return fmt.Errorf("shell '%s': speed range %s has max < min", s.Type, s.Speed)
			}
		}

		index[s.Type] = s
	}

	c.byType = index
	return nil
}

// Lookup 按弹型查找爆炸参数
func (c *ShellCatalog) Lookup(t types.ShellType) (ShellSpec, bool) {
	if c.byType == nil {
		if err := c.Validate(); err != nil {
			return ShellSpec{}, false
		}
	}
	s, ok := c.byType[t]
	return s, ok
}

// DefaultShellCatalog 返回内置目录，与 data/shells.yaml 一致
func DefaultShellCatalog() *ShellCatalog {
	c := &ShellCatalog{
		Shells: []ShellSpec{
			{
				Type:      types.ShellPeony,
				Count:     150,
				Speed:     particle.Range{Min: 5, Max: 9},
				Spread:    SpreadSpec{Kind: types.SpreadFull},
				Behavior:  types.BehaviorNormal,
				HueJitter: 10,
			},
			{
				Type:      types.ShellGlitter,
				Count:     120,
				Speed:     particle.Range{Min: 4, Max: 7},
				Spread:    SpreadSpec{Kind: types.SpreadFull},
				Behavior:  types.BehaviorGlitter,
				HueJitter: 10,
			},
			{
				Type:      types.ShellHorsetail,
				Count:     90,
				Speed:     particle.Range{Min: 3, Max: 6},
				Spread:    SpreadSpec{Kind: types.SpreadArc, Center: 270, Width: 120},
				Behavior:  types.BehaviorHeavy,
				HueJitter: 6,
			},
			{
				Type:      types.ShellMine,
				Count:     80,
				Speed:     particle.Range{Min: 6, Max: 10},
				Spread:    SpreadSpec{Kind: types.SpreadArc, Center: 270, Width: 60},
				Behavior:  types.BehaviorHeavy,
				HueJitter: 10,
			},
			{
				Type:      types.ShellFountainUp,
				Count:     12,
				Speed:     particle.Range{Min: 3, Max: 5},
				Spread:    SpreadSpec{Kind: types.SpreadArc, Center: 270, Width: 40},
				Behavior:  types.BehaviorFountain,
				HueJitter: 8,
			},
			{
				Type:      types.ShellFountainDown,
				Count:     12,
				Speed:     particle.Range{Min: 2, Max: 4},
				Spread:    SpreadSpec{Kind: types.SpreadArc, Center: 90, Width: 60},
				Behavior:  types.BehaviorFountain,
				HueJitter: 8,
			},
			{
				Type:     types.ShellText,
				Spread:   SpreadSpec{Kind: types.SpreadGlyph},
				Behavior: types.BehaviorText,
				Glyph: &GlyphSpec{
					FontSize:      180,
					VelocityScale: 0.05,
					Jitter:        0.2,
				},
			},
		},
	}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("built-in shell catalog is invalid: %v", err))
	}
	return c
}
