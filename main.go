// Fireworks 桌面端入口
//
// 用法：
//
//	go run . [flags]
//
// 按键：
//
//	S    跳过熄灯倒计时
//	M    静音 / 取消静音
//	+/-  调整音量
//	H    显示 / 隐藏调试信息
//	R    演出结束后重播
//	F11  全屏切换
package main

import (
	"flag"
	"log"

	"github.com/gonewx/fireworks/pkg/app"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	seedFlag    = flag.Int64("seed", 0, "Random seed for the show (0 = clock)")
	onceFlag    = flag.Bool("once", false, "Exit after the show and closing caption")
	skipFlag    = flag.Bool("skip", false, "Skip the lights-down countdown")
	shellsFlag  = flag.String("shells", "data/shells.yaml", "Shell catalog file")
	physicsFlag = flag.String("physics", "data/physics.yaml", "Physics config file")
	scriptFlag  = flag.String("script", "data/show.yaml", "Show script file")
)

func main() {
	flag.Parse()

	// data/ 已编译进二进制，磁盘上的同名文件不再需要
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		Seed:          *seedFlag,
		Once:          *onceFlag,
		SkipCountdown: *skipFlag,
		ShellsPath:    *shellsFlag,
		PhysicsPath:   *physicsFlag,
		ScriptPath:    *scriptFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
