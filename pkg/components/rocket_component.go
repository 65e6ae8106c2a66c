package components

import "github.com/gonewx/fireworks/pkg/types"

// RocketComponent 一枚正在上升的烟花弹
// 爆炸恰好发生一次：Exploded 置位后火箭不再更新，并在同一帧被清除
type RocketComponent struct {
	ID int

	X, Y   float64
	VX, VY float64

	// TargetY 爆炸高度（屏幕坐标，y 向下）
	TargetY float64

	Color HSL
	Shell types.ShellType
	// Payload 文字弹携带的字符
	Payload string

	Exploded    bool
	LaunchFrame int
}
