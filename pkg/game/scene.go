package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the viewer (countdown, show).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Unmountable 是一个可选接口，场景被切换走或程序退出时调用
//
// 演出场景借此停止模拟，保证卸载后不再有帧运行。
type Unmountable interface {
	Unmount()
}

// Resizable 是一个可选接口，逻辑屏幕尺寸变化时调用
type Resizable interface {
	Resize(width, height int, scale float64)
}
