// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// ShellType 定义烟花弹的类型
type ShellType int

const (
	// ShellUnknown 未知弹型
	ShellUnknown ShellType = iota
	// ShellPeony 牡丹：全向球形爆炸
	ShellPeony
	// ShellGlitter 闪烁：全向爆炸，粒子间歇闪亮
	ShellGlitter
	// ShellHorsetail 马尾：向下偏置的扇形
	ShellHorsetail
	// ShellMine 地雷：固定速度低空发射的窄扇形
	ShellMine
	// ShellFountainUp 上喷泉
	ShellFountainUp
	// ShellFountainDown 下喷泉
	ShellFountainDown
	// ShellText 文字弹：按字形栅格生成粒子
	ShellText
)

var shellTypeNames = map[ShellType]string{
	ShellPeony:        "peony",
	ShellGlitter:      "glitter",
	ShellHorsetail:    "horsetail",
	ShellMine:         "mine",
	ShellFountainUp:   "fountain_up",
	ShellFountainDown: "fountain_down",
	ShellText:         "text",
}

// AllShellTypes 按声明顺序返回所有已知弹型
func AllShellTypes() []ShellType {
	return []ShellType{
		ShellPeony,
		ShellGlitter,
		ShellHorsetail,
		ShellMine,
		ShellFountainUp,
		ShellFountainDown,
		ShellText,
	}
}

// String 返回弹型的字符串表示
func (s ShellType) String() string {
	if name, ok := shellTypeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseShellType 将配置文件中的名称解析为 ShellType
func ParseShellType(name string) (ShellType, error) {
	for t, n := range shellTypeNames {
		if n == name {
			return t, nil
		}
	}
	return ShellUnknown, fmt.Errorf("unknown shell type %q", name)
}

// MarshalText 实现 encoding.TextMarshaler，供 YAML 键/值使用
func (s ShellType) MarshalText() ([]byte, error) {
	if s == ShellUnknown {
		return nil, fmt.Errorf("cannot marshal unknown shell type")
	}
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *ShellType) UnmarshalText(text []byte) error {
	t, err := ParseShellType(string(text))
	if err != nil {
		return err
	}
	*s = t
	return nil
}
