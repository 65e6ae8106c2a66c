package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/show"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// closingHoldSecs 结束字幕停留多久后通知宿主
const closingHoldSecs = 4.0

// volumeStep 每次按 +/- 调整的音量
const volumeStep = 0.1

// ShowState 演出场景状态
type ShowState int

const (
	ShowRunning ShowState = iota
	ShowClosing           // 演出结束，显示结束字幕
	ShowIdle              // 结束字幕已展示完毕，等待重播或退出
)

// ShowSceneConfig 演出场景配置
type ShowSceneConfig struct {
	Catalog *config.ShellCatalog
	Physics *config.PhysicsConfig
	Script  *config.ShowScript
	Seed    int64

	Width, Height int
	Scale         float64

	SceneManager *game.SceneManager
	Audio        *game.AudioManager // 可为 nil（无声）
	Settings     *game.SettingsManager
	Fonts        *Fonts

	// OnFinished 结束字幕展示完毕后调用一次
	OnFinished func()
	// ReplayScene 空闲状态按 R 时加载的场景名
	ReplayScene string
}

// ShowScene 挂载模拟的演出场景
type ShowScene struct {
	cfg ShowSceneConfig

	sim      *show.Simulation
	layer    *render.LayerRenderer
	captions *CaptionLayer

	state      ShowState
	closingAge float64
	scale      float64
	hud        bool
	err        error
}

// NewShowScene 创建演出场景并挂载模拟
func NewShowScene(cfg ShowSceneConfig) (*ShowScene, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.DefaultWindowWidth, config.DefaultWindowHeight
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	layer := render.NewLayerRenderer(cfg.Width, cfg.Height)
	sim, err := show.New(show.Options{
		Width:    float64(cfg.Width),
		Height:   float64(cfg.Height),
		Scale:    cfg.Scale,
		Catalog:  cfg.Catalog,
		Physics:  cfg.Physics,
		Script:   cfg.Script,
		Renderer: layer,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mount show: %w", err)
	}

	s := &ShowScene{
		cfg:      cfg,
		sim:      sim,
		layer:    layer,
		captions: NewCaptionLayer(nil),
		scale:    cfg.Scale,
	}
	if cfg.Settings != nil {
		s.hud = cfg.Settings.GetSettings().ShowHUD
	}

	signals := sim.Signals()
	signals.OnOverlay(s.captions.Handle)
	if cfg.Audio != nil {
		signals.OnCue(cfg.Audio.HandleCue)
	}
	signals.OnComplete(s.onComplete)

	log.Printf("[ShowScene] 演出已挂载 (%dx%d@%.1fx)", cfg.Width, cfg.Height, cfg.Scale)
	return s, nil
}

// Simulation 返回挂载的模拟
func (s *ShowScene) Simulation() *show.Simulation {
	return s.sim
}

// State 当前状态
func (s *ShowScene) State() ShowState {
	return s.state
}

// Err 导致演出中止的错误
func (s *ShowScene) Err() error {
	return s.err
}

// Captions 字幕层
func (s *ShowScene) Captions() *CaptionLayer {
	return s.captions
}

func (s *ShowScene) onComplete() {
	s.state = ShowClosing
	s.closingAge = 0
	s.captions.Show("closing", "")
}

// Update 处理按键并推进一帧
func (s *ShowScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ToggleHUD()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.AdjustVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.AdjustVolume(-volumeStep)
	}
	if s.state == ShowIdle && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Replay()
	}
	s.advance(deltaTime)
}

func (s *ShowScene) advance(dt float64) {
	if !s.sim.Stopped() {
		if err := s.sim.Step(); err != nil && !errors.Is(err, show.ErrStopped) {
			// 帧失败：动画停止，直接进入结束流程
			s.err = err
			log.Printf("[ShowScene] 演出中止: %v", err)
			s.onComplete()
		}
	}

	s.captions.Update(dt)

	if s.state == ShowClosing {
		s.closingAge += dt
		if s.closingAge >= closingHoldSecs {
			s.state = ShowIdle
			log.Printf("[ShowScene] 演出结束，进入空闲")
			if s.cfg.OnFinished != nil {
				s.cfg.OnFinished()
			}
		}
	}
}

// ToggleMute 切换音效并保存设置
func (s *ShowScene) ToggleMute() {
	if s.cfg.Audio == nil {
		return
	}
	s.cfg.Audio.ToggleSound()
	s.saveSettings()
}

// AdjustVolume 调整音量（限制在 [0, 1]）并保存设置
func (s *ShowScene) AdjustVolume(delta float64) {
	if s.cfg.Audio == nil {
		return
	}
	s.cfg.Audio.SetSoundVolume(s.cfg.Audio.SoundVolume() + delta)
	log.Printf("[ShowScene] 音量 %.1f", s.cfg.Audio.SoundVolume())
	s.saveSettings()
}

// ToggleHUD 切换调试信息
func (s *ShowScene) ToggleHUD() {
	s.hud = !s.hud
	if s.cfg.Settings != nil {
		s.cfg.Settings.SetShowHUD(s.hud)
		s.saveSettings()
	}
}

// Replay 重新开始整个流程
func (s *ShowScene) Replay() {
	if s.cfg.SceneManager == nil || s.cfg.ReplayScene == "" {
		return
	}
	s.cfg.SceneManager.Load(s.cfg.ReplayScene)
}

func (s *ShowScene) saveSettings() {
	if s.cfg.Settings == nil {
		return
	}
	if err := s.cfg.Settings.Save(); err != nil {
		log.Printf("[ShowScene] Warning: 设置保存失败: %v", err)
	}
}

// Resize 视口变化在下一帧开始时生效
func (s *ShowScene) Resize(width, height int, scale float64) {
	if scale > 0 {
		s.scale = scale
	}
	s.sim.Resize(float64(width), float64(height), scale)
}

// Unmount 停止模拟，之后不再运行任何帧
func (s *ShowScene) Unmount() {
	s.sim.Stop()
	log.Printf("[ShowScene] 演出已卸载")
}

// Draw 绘制图层、字幕和调试信息
func (s *ShowScene) Draw(screen *ebiten.Image) {
	s.layer.Draw(screen)
	if s.cfg.Fonts != nil {
		s.captions.Draw(screen, s.cfg.Fonts, s.scale)
	}
	if s.hud {
		st := s.sim.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  rockets %d  particles %d (peak %d)  strokes %d  TPS %.0f",
			st.Frame, st.LiveRockets, st.LiveParticles, st.PeakParticles, s.layer.LastStrokeCount(), ebiten.ActualTPS()), 10, 10)
		if s.cfg.Audio != nil {
			status := fmt.Sprintf("volume %.0f%% (+/-)", s.cfg.Audio.SoundVolume()*100)
			if !s.cfg.Audio.SoundEnabled() {
				status = "muted (M)"
			}
			ebitenutil.DebugPrintAt(screen, status, 10, 26)
		}
	}
}
