package types

import "fmt"

// Behavior 粒子的运动/衰减配置标签
type Behavior int

const (
	BehaviorUnknown Behavior = iota
	BehaviorNormal
	BehaviorHeavy
	BehaviorGlitter
	BehaviorText
	BehaviorFountain
	BehaviorTrail
)

var behaviorNames = map[Behavior]string{
	BehaviorNormal:   "normal",
	BehaviorHeavy:    "heavy",
	BehaviorGlitter:  "glitter",
	BehaviorText:     "text",
	BehaviorFountain: "fountain",
	BehaviorTrail:    "trail",
}

// AllBehaviors 返回所有已知行为，顺序固定
func AllBehaviors() []Behavior {
	return []Behavior{
		BehaviorNormal,
		BehaviorHeavy,
		BehaviorGlitter,
		BehaviorText,
		BehaviorFountain,
		BehaviorTrail,
	}
}

func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return "unknown"
}

// ParseBehavior 解析行为名称
func ParseBehavior(name string) (Behavior, error) {
	for b, n := range behaviorNames {
		if n == name {
			return b, nil
		}
	}
	return BehaviorUnknown, fmt.Errorf("unknown particle behavior %q", name)
}

func (b Behavior) MarshalText() ([]byte, error) {
	if b == BehaviorUnknown {
		return nil, fmt.Errorf("cannot marshal unknown behavior")
	}
	return []byte(b.String()), nil
}

func (b *Behavior) UnmarshalText(text []byte) error {
	v, err := ParseBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// SpreadKind 爆炸的角度分布策略
type SpreadKind int

const (
	// SpreadFull 全圆均匀分布
	SpreadFull SpreadKind = iota
	// SpreadArc 限定在一段弧内
	SpreadArc
	// SpreadGlyph 按文字栅格点分布
	SpreadGlyph
)

func (s SpreadKind) String() string {
	switch s {
	case SpreadFull:
		return "full"
	case SpreadArc:
		return "arc"
	case SpreadGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

func (s *SpreadKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full", "":
		*s = SpreadFull
	case "arc":
		*s = SpreadArc
	case "glyph":
		*s = SpreadGlyph
	default:
		return fmt.Errorf("unknown spread kind %q", string(text))
	}
	return nil
}

// CueKind 音效提示的类型
type CueKind int

const (
	CueLaunch CueKind = iota
	CueExplosion
)

func (c CueKind) String() string {
	switch c {
	case CueLaunch:
		return "launch"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

func (c *CueKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "launch":
		*c = CueLaunch
	case "explosion":
		*c = CueExplosion
	default:
		return fmt.Errorf("unknown cue kind %q", string(text))
	}
	return nil
}
