// Package app 提供烟花演出应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// appName gdata 存储使用的应用名
const appName = "fireworks"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 模拟随机种子，0 表示使用时钟
	Seed int64
	// Once 演出结束后退出程序
	Once bool
	// SkipCountdown 跳过熄灯倒计时，直接开始演出
	SkipCountdown bool

	// 数据文件路径，为空时使用内置数据
	ShellsPath  string
	PhysicsPath string
	ScriptPath  string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	quit         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用数据文件路径前，必须先调用 embedded.Init() 初始化嵌入资源（或提供磁盘路径）。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, physics, script, err := loadData(cfg)
	if err != nil {
		return nil, err
	}

	settings, _ := game.NewSettingsManager(game.OpenSettingsStore(appName))
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	audioManager, err := game.NewAudioManager(audio.NewContext(int(game.CueSampleRate)), settings, cfg.Seed)
	if err != nil {
		// 无声也能看演出
		log.Printf("[App] Warning: 音效初始化失败: %v", err)
		audioManager = nil
	}

	fonts, err := scenes.NewFonts()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	a := &App{settings: settings}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case scenes.SceneCountdown:
			return scenes.NewCountdownScene(sceneManager, fonts, scenes.SceneShow)
		case scenes.SceneShow:
			s, err := scenes.NewShowScene(scenes.ShowSceneConfig{
				Catalog:      catalog,
				Physics:      physics,
				Script:       script,
				Seed:         cfg.Seed,
				Width:        config.DefaultWindowWidth,
				Height:       config.DefaultWindowHeight,
				SceneManager: sceneManager,
				Audio:        audioManager,
				Settings:     settings,
				Fonts:        fonts,
				ReplayScene:  scenes.SceneCountdown,
				OnFinished: func() {
					if cfg.Once {
						a.quit = true
					}
				},
			})
			if err != nil {
				log.Printf("[App] 演出场景创建失败: %v", err)
				return nil
			}
			return s
		default:
			return nil
		}
	})
	a.sceneManager = sceneManager

	if cfg.SkipCountdown {
		log.Printf("[App] SkipCountdown enabled, starting show directly")
		sceneManager.Load(scenes.SceneShow)
	} else {
		sceneManager.Load(scenes.SceneCountdown)
	}
	if sceneManager.GetCurrentScene() == nil {
		return nil, errors.New("no scene could be started")
	}

	return a, nil
}

// loadData 加载烟花弹目录、物理参数和演出脚本
func loadData(cfg Config) (*config.ShellCatalog, *config.PhysicsConfig, *config.ShowScript, error) {
	catalog := config.DefaultShellCatalog()
	if cfg.ShellsPath != "" {
		c, err := config.LoadShellCatalog(cfg.ShellsPath)
		if err != nil {
			return nil, nil, nil, err
		}
		catalog = c
	}

	physics := config.DefaultPhysicsConfig()
	if cfg.PhysicsPath != "" {
		p, err := config.LoadPhysicsConfig(cfg.PhysicsPath)
		if err != nil {
			return nil, nil, nil, err
		}
		physics = p
	}

	script := config.DefaultShowScript()
	if cfg.ScriptPath != "" {
		s, err := config.LoadShowScript(cfg.ScriptPath, catalog)
		if err != nil {
			return nil, nil, nil, err
		}
		script = s
	}

	log.Printf("[App] 数据加载完成: %d 种烟花弹, 演出 %q (%d 帧)", len(catalog.Shells), script.Name, script.EndFrame)
	return catalog, physics, script, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（每秒 60 次，与模拟的帧步长一致）
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / 60.0)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: 设置保存失败: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口，演出视口随之调整
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.DefaultWindowWidth, config.DefaultWindowHeight
	}
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight, scale)
	return outsideWidth, outsideHeight
}

// Close 卸载当前场景并保存设置（窗口关闭时调用）
func (a *App) Close() {
	a.sceneManager.Unmount()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: 设置保存失败: %v", err)
	}
}
