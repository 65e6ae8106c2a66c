package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/fireworks/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 熄灯倒计时各阶段时长（秒）
const (
	countdownDarkSecs  = 1.5
	countdownReadySecs = 2.5
	countdownPauseSecs = 0.5
)

// CountdownPhase 倒计时阶段
type CountdownPhase int

const (
	PhaseDark CountdownPhase = iota
	PhaseReady
	PhasePause
	PhaseDone
)

func (p CountdownPhase) String() string {
	switch p {
	case PhaseDark:
		return "dark"
	case PhaseReady:
		return "ready"
	case PhasePause:
		return "pause"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// roomColor 熄灯前的房间底色
var roomColor = color.RGBA{R: 34, G: 30, B: 46, A: 255}

// CountdownScene 熄灯 → "READY?" → 停顿，然后切换到演出场景
// 按 S 直接跳到演出
type CountdownScene struct {
	sceneManager *game.SceneManager
	fonts        *Fonts
	captions     *CaptionLayer

	phase   CountdownPhase
	elapsed float64 // 当前阶段已经过的时间
	scale   float64

	// next 倒计时结束后加载的场景名
	next string
}

// NewCountdownScene 创建倒计时场景
func NewCountdownScene(sm *game.SceneManager, fonts *Fonts, next string) *CountdownScene {
	log.Printf("[CountdownScene] 开始熄灯倒计时")
	return &CountdownScene{
		sceneManager: sm,
		fonts:        fonts,
		captions:     NewCaptionLayer(nil),
		phase:        PhaseDark,
		scale:        1,
		next:         next,
	}
}

// Phase 当前阶段
func (s *CountdownScene) Phase() CountdownPhase {
	return s.phase
}

// Update 处理跳过按键并推进阶段
func (s *CountdownScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.Skip()
	}
	s.advance(deltaTime)
}

// Skip 立即结束倒计时
func (s *CountdownScene) Skip() {
	if s.phase == PhaseDone {
		return
	}
	log.Printf("[CountdownScene] 跳过倒计时")
	s.finish()
}

func (s *CountdownScene) advance(dt float64) {
	if s.phase == PhaseDone {
		return
	}
	s.elapsed += dt
	s.captions.Update(dt)

	switch s.phase {
	case PhaseDark:
		if s.elapsed >= countdownDarkSecs {
			s.enter(PhaseReady, countdownDarkSecs)
			s.captions.Show("ready", "")
		}
	case PhaseReady:
		// 在阶段结束前淡出，保证停顿阶段是全黑
		if s.elapsed >= countdownReadySecs-s.readyFadeOut() {
			s.captions.Hide("ready")
		}
		if s.elapsed >= countdownReadySecs {
			s.enter(PhasePause, countdownReadySecs)
		}
	case PhasePause:
		if s.elapsed >= countdownPauseSecs {
			s.finish()
		}
	}
}

func (s *CountdownScene) readyFadeOut() float64 {
	return s.captions.styles["ready"].FadeOutSecs
}

// enter 进入下一阶段，多出的时间计入新阶段
func (s *CountdownScene) enter(p CountdownPhase, prevDuration float64) {
	s.elapsed -= prevDuration
	s.phase = p
	log.Printf("[CountdownScene] 阶段: %s", p)
}

func (s *CountdownScene) finish() {
	s.phase = PhaseDone
	s.captions.Clear()
	if s.sceneManager != nil && s.next != "" {
		s.sceneManager.Load(s.next)
	}
}

// darkness 熄灯进度 0 → 1
func (s *CountdownScene) darkness() float64 {
	if s.phase != PhaseDark {
		return 1
	}
	return fadeInCurve.At(s.elapsed / countdownDarkSecs)
}

// Resize 记录设备缩放，字幕字号随之缩放
func (s *CountdownScene) Resize(_, _ int, scale float64) {
	if scale > 0 {
		s.scale = scale
	}
}

// Draw 绘制逐渐变暗的房间与字幕
func (s *CountdownScene) Draw(screen *ebiten.Image) {
	k := 1 - s.darkness()
	screen.Fill(color.RGBA{
		R: uint8(float64(roomColor.R) * k),
		G: uint8(float64(roomColor.G) * k),
		B: uint8(float64(roomColor.B) * k),
		A: 255,
	})
	if s.fonts != nil {
		s.captions.Draw(screen, s.fonts, s.scale)
	}
}
