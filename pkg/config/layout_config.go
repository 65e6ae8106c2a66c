package config

// 布局配置常量
// 本文件定义了窗口与终端的默认尺寸参数

// 窗口配置
const (
	// DefaultWindowWidth 是启动时的窗口宽度（逻辑像素）
	// 演出视口随窗口变化，此值只决定初始大小
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 是启动时的窗口高度（逻辑像素）
	DefaultWindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Fireworks"
)

// 终端配置
// 一个终端单元格对应的模拟像素大小；单元格内上下两个子像素各占一半高度
const (
	TerminalCellWidth  = 8.0
	TerminalCellHeight = 16.0
)
