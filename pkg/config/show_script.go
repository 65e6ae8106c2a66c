package config

import (
	"fmt"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/types"
	"gopkg.in/yaml.v3"
)

// ShowScript 演出脚本
//
// 帧索引的编排时间线：每个条目在某一帧（一次性）或某一帧窗口内按周期（重复）触发，
// 动作包括发射火箭、喷泉喷射、字幕事件和音效提示。
// 同一帧触发的多个条目按声明顺序执行。
//
// 配置文件位置: data/show.yaml
type ShowScript struct {
	// Name 演出名称（日志用）
	Name string `yaml:"name"`

	// EndFrame 演出最后一帧；之后不再有条目触发
	EndFrame int `yaml:"endFrame"`

	// Palette 颜色名称 → HSL
	Palette map[string]components.HSL `yaml:"palette"`

	// Entries 时间线条目（声明顺序即同帧执行顺序）
	Entries []ScheduleEntry `yaml:"entries"`
}

// ScheduleEntry 时间线条目
//
// Frame 与 Window 二选一。
type ScheduleEntry struct {
	Name string `yaml:"name"`

	// Frame 一次性触发帧（从 1 开始）
	Frame int `yaml:"frame,omitempty"`

	// Window 窗口周期触发
	Window *WindowSpec `yaml:"window,omitempty"`

	Rockets   []RocketSpec    `yaml:"rockets,omitempty"`
	Fountains []FountainSpec  `yaml:"fountains,omitempty"`
	Overlay   *OverlaySpec    `yaml:"overlay,omitempty"`
	Cues      []types.CueKind `yaml:"cues,omitempty"`
}

// WindowSpec 在 [Start, End) 内每 Period 帧触发一次
type WindowSpec struct {
	Start  int `yaml:"start"`
	End    int `yaml:"end"`
	Period int `yaml:"period"`
}

// RocketSpec 火箭发射参数
//
// 位置均为视口比例。窗口条目的第 i 次触发使用 X+i*XStep、Angle+i*AngleStep、
// 色相 +i*HueStep，用于扇形连发。
type RocketSpec struct {
	// X 发射点横坐标（视口宽度比例）
	X float64 `yaml:"x"`
	// Target 爆炸高度（视口高度比例，从顶部量起）
	Target float64 `yaml:"target"`
	// Color 调色板名称
	Color string          `yaml:"color"`
	Shell types.ShellType `yaml:"shell"`
	// Text 文字弹字符
	Text string `yaml:"text,omitempty"`

	// Angle 发射倾角（度，正值向右）
	Angle float64 `yaml:"angle,omitempty"`

	XStep     float64 `yaml:"xStep,omitempty"`
	AngleStep float64 `yaml:"angleStep,omitempty"`
	HueStep   float64 `yaml:"hueStep,omitempty"`
}

// FountainSpec 地面喷泉，一次触发按目录参数喷射一批粒子
type FountainSpec struct {
	X     float64         `yaml:"x"`
	Y     float64         `yaml:"y"`
	Color string          `yaml:"color"`
	Shell types.ShellType `yaml:"shell"`
	// Count 覆盖目录中的粒子数量（0 表示使用目录值）
	Count int `yaml:"count,omitempty"`
}

// OverlaySpec 字幕事件
type OverlaySpec struct {
	// Action "show" 或 "hide"
	Action string `yaml:"action"`
	// ID 字幕标识，如 "credit"、"finale"
	ID   string `yaml:"id"`
	Text string `yaml:"text,omitempty"`
}

// LoadShowScript 加载演出脚本
//
// 脚本是静态可信数据，任何非法条目都在加载时拒绝，而不是运行时跳过。
func LoadShowScript(path string, catalog *ShellCatalog) (*ShowScript, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show script: %w", err)
	}
	return ParseShowScript(data, catalog)
}

// ParseShowScript 从内存中的 YAML 解析演出脚本
func ParseShowScript(data []byte, catalog *ShellCatalog) (*ShowScript, error) {
	var script ShowScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse show script: %w", err)
	}

	if err := script.Validate(catalog); err != nil {
		return nil, fmt.Errorf("invalid show script: %w", err)
	}

	return &script, nil
}

// Validate 验证脚本
//
// catalog 为 nil 时跳过弹型存在性检查。
func (s *ShowScript) Validate(catalog *ShellCatalog) error {
	if s.EndFrame < 1 {
		return fmt.Errorf("endFrame must be >= 1, got %d", s.EndFrame)
	}
	if len(s.Entries) == 0 {
		return fmt.Errorf("script has no entries")
	}

	for i := range s.Entries {
		e := &s.Entries[i]
		label := e.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if err := s.validateEntry(e, catalog); err != nil {
			return fmt.Errorf("entry '%s': %w", label, err)
		}
	}
	return nil
}

func (s *ShowScript) validateEntry(e *ScheduleEntry, catalog *ShellCatalog) error {
	switch {
	case e.Window == nil && e.Frame == 0:
		return fmt.Errorf("needs either frame or window")
	case e.Window != nil && e.Frame != 0:
		return fmt.Errorf("frame and window are mutually exclusive")
	case e.Window == nil:
		if e.Frame < 1 || e.Frame > s.EndFrame {
			return fmt.Errorf("frame %d out of range [1, %d]", e.Frame, s.EndFrame)
		}
	default:
		w := e.Window
		if w.Start < 1 {
			return fmt.Errorf("window start %d must be >= 1", w.Start)
		}
		if w.End <= w.Start {
			return fmt.Errorf("window end %d must be > start %d", w.End, w.Start)
		}
		if w.End-1 > s.EndFrame {
			return fmt.Errorf("window end %d beyond endFrame %d", w.End, s.EndFrame)
		}
		if w.Period < 1 {
			return fmt.Errorf("window period must be >= 1, got %d", w.Period)
		}
	}

	if len(e.Rockets) == 0 && len(e.Fountains) == 0 && e.Overlay == nil && len(e.Cues) == 0 {
		return fmt.Errorf("has no actions")
	}

	for j, r := range e.Rockets {
		if err := s.validateRocket(r, catalog); err != nil {
			return fmt.Errorf("rocket #%d: %w", j, err)
		}
		// 扇形连发的最后一发也必须在合法范围内
		if last := e.Shots() - 1; last > 0 {
			if err := s.validateRocket(r.AtShot(last), catalog); err != nil {
				return fmt.Errorf("rocket #%d shot %d: %w", j, last, err)
			}
		}
	}
	for j, f := range e.Fountains {
		if err := s.validateFountain(f, catalog); err != nil {
			return fmt.Errorf("fountain #%d: %w", j, err)
		}
	}
	if o := e.Overlay; o != nil {
		if o.Action != "show" && o.Action != "hide" {
			return fmt.Errorf("overlay action must be show or hide, got %q", o.Action)
		}
		if o.ID == "" {
			return fmt.Errorf("overlay id is required")
		}
	}
	return nil
}

func (s *ShowScript) validateRocket(r RocketSpec, catalog *ShellCatalog) error {
	if r.Shell == types.ShellUnknown {
		return fmt.Errorf("missing shell")
	}
	if catalog != nil {
		if _, ok := catalog.Lookup(r.Shell); !ok {
			return fmt.Errorf("shell '%s' not in catalog", r.Shell)
		}
	}
	if r.X < 0 || r.X > 1 {
		return fmt.Errorf("x %.3f outside [0, 1]", r.X)
	}
	if r.Target <= 0 || r.Target >= 1 {
		return fmt.Errorf("target %.3f outside (0, 1)", r.Target)
	}
	if r.Angle <= -80 || r.Angle >= 80 {
		return fmt.Errorf("angle %.1f outside (-80, 80)", r.Angle)
	}
	if _, ok := s.Palette[r.Color]; !ok {
		return fmt.Errorf("unknown color %q", r.Color)
	}
	if r.Shell == types.ShellText && r.Text == "" {
		return fmt.Errorf("text shell requires text")
	}
	if r.Shell != types.ShellText && r.Text != "" {
		return fmt.Errorf("only text shells carry text")
	}
	return nil
}

func (s *ShowScript) validateFountain(f FountainSpec, catalog *ShellCatalog) error {
	if f.Shell != types.ShellFountainUp && f.Shell != types.ShellFountainDown {
		return fmt.Errorf("fountain shell must be fountain_up or fountain_down, got '%s'", f.Shell)
	}
	if catalog != nil {
		if _, ok := catalog.Lookup(f.Shell); !ok {
			return fmt.Errorf("shell '%s' not in catalog", f.Shell)
		}
	}
	if f.X < 0 || f.X > 1 || f.Y < 0 || f.Y > 1 {
		return fmt.Errorf("position (%.3f, %.3f) outside the viewport", f.X, f.Y)
	}
	if f.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", f.Count)
	}
	if _, ok := s.Palette[f.Color]; !ok {
		return fmt.Errorf("unknown color %q", f.Color)
	}
	return nil
}

// Shots 返回条目触发的次数
func (e *ScheduleEntry) Shots() int {
	if e.Window == nil {
		return 1
	}
	return (e.Window.End-e.Window.Start-1)/e.Window.Period + 1
}

// Fires 判断条目是否在 frame 触发，返回本次触发的序号
func (e *ScheduleEntry) Fires(frame int) (shot int, ok bool) {
	if e.Window == nil {
		return 0, frame == e.Frame
	}
	w := e.Window
	if frame < w.Start || frame >= w.End {
		return 0, false
	}
	if (frame-w.Start)%w.Period != 0 {
		return 0, false
	}
	return (frame - w.Start) / w.Period, true
}

// AtShot 返回第 shot 次触发时的发射参数
func (r RocketSpec) AtShot(shot int) RocketSpec {
	i := float64(shot)
	r.X += i * r.XStep
	r.Angle += i * r.AngleStep
	return r
}

// Color 查找调色板颜色
func (s *ShowScript) Color(name string) components.HSL {
	return s.Palette[name]
}

// DefaultShowScript 返回内置演出，与 data/show.yaml 一致
func DefaultShowScript() *ShowScript {
	peony := func(x, target float64, color string) RocketSpec {
		return RocketSpec{X: x, Target: target, Color: color, Shell: types.ShellPeony}
	}
	text := func(x float64, color, ch string) RocketSpec {
		return RocketSpec{X: x, Target: 0.4, Color: color, Shell: types.ShellText, Text: ch}
	}

	s := &ShowScript{
		Name:     "new-year",
		EndFrame: 900,
		Palette: map[string]components.HSL{
			"gold":   {H: 45, S: 100, L: 50},
			"white":  {H: 0, S: 0, L: 100},
			"red":    {H: 0, S: 80, L: 60},
			"yellow": {H: 45, S: 100, L: 50},
			"green":  {H: 120, S: 60, L: 50},
			"blue":   {H: 210, S: 90, L: 60},
		},
		Entries: []ScheduleEntry{
			{Name: "opener", Frame: 20, Rockets: []RocketSpec{peony(0.5, 0.35, "gold")}},
			{Name: "white pair", Frame: 140, Rockets: []RocketSpec{
				peony(0.3, 0.45, "white"),
				peony(0.7, 0.45, "white"),
			}},
			{Name: "gold trio", Frame: 270, Rockets: []RocketSpec{
				peony(0.2, 0.3, "gold"),
				peony(0.5, 0.25, "gold"),
				peony(0.8, 0.3, "gold"),
			}},
			{Name: "credit in", Frame: 300, Overlay: &OverlaySpec{Action: "show", ID: "credit", Text: "Happy New Year"}},
			{Name: "glitter sweep", Window: &WindowSpec{Start: 320, End: 400, Period: 16}, Rockets: []RocketSpec{{
				X: 0.1, XStep: 0.2, Target: 0.3, Color: "gold", Shell: types.ShellGlitter,
				Angle: -12, AngleStep: 6, HueStep: 30,
			}}},
			{Name: "fountains", Window: &WindowSpec{Start: 330, End: 430, Period: 5}, Fountains: []FountainSpec{
				{X: 0.05, Y: 1, Color: "gold", Shell: types.ShellFountainUp},
				{X: 0.95, Y: 1, Color: "gold", Shell: types.ShellFountainUp},
			}},
			{Name: "credit out", Frame: 430, Overlay: &OverlaySpec{Action: "hide", ID: "credit"}},
			{Name: "finale", Frame: 450, Rockets: []RocketSpec{
				text(0.2, "red", "2"),
				text(0.4, "yellow", "0"),
				text(0.6, "green", "2"),
				text(0.8, "blue", "6"),
			}},
			{Name: "finale caption", Frame: 540, Overlay: &OverlaySpec{Action: "show", ID: "finale", Text: "2026"}},
			{Name: "finale cue", Frame: 540, Cues: []types.CueKind{types.CueExplosion}},
			{Name: "finale caption out", Frame: 760, Overlay: &OverlaySpec{Action: "hide", ID: "finale"}},
		},
	}
	if err := s.Validate(DefaultShellCatalog()); err != nil {
		panic(fmt.Sprintf("built-in show script is invalid: %v", err))
	}
	return s
}
