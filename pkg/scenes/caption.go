package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/show"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CaptionStyle 字幕样式
type CaptionStyle struct {
	// Size 字号（逻辑像素，绘制时乘以设备缩放）
	Size float64
	// Y 基线位置，占屏幕高度的比例
	Y     float64
	Color color.Color
	// DefaultText show 事件未携带文字时使用
	DefaultText string

	FadeIn, FadeOut         particle.Curve
	FadeInSecs, FadeOutSecs float64
}

func mustCurve(s string) particle.Curve {
	c, err := particle.ParseCurve(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	fadeInCurve  = mustCurve("EaseOut 0,0 1,1")
	fadeOutCurve = mustCurve("EaseIn 0,1 1,0")
)

// DefaultCaptionStyles 内置字幕样式，键为字幕 ID
func DefaultCaptionStyles() map[string]CaptionStyle {
	base := CaptionStyle{
		Size: 40, Y: 0.85, Color: color.RGBA{R: 255, G: 236, B: 200, A: 255},
		FadeIn: fadeInCurve, FadeOut: fadeOutCurve, FadeInSecs: 0.8, FadeOutSecs: 0.8,
	}

	credit := base
	credit.DefaultText = "Happy New Year"

	finale := base
	finale.Size, finale.Y = 120, 0.5
	finale.Color = color.RGBA{R: 255, G: 215, B: 120, A: 255}
	finale.DefaultText = "2026"
	finale.FadeInSecs = 1.5

	ready := base
	ready.Size, ready.Y = 72, 0.5
	ready.Color = color.White
	ready.DefaultText = "READY?"
	ready.FadeInSecs, ready.FadeOutSecs = 0.4, 0.4

	closing := base
	closing.Size, closing.Y = 48, 0.5
	closing.DefaultText = "Thanks for watching"
	closing.FadeInSecs = 1.2

	return map[string]CaptionStyle{
		"":        base,
		"credit":  credit,
		"finale":  finale,
		"ready":   ready,
		"closing": closing,
	}
}

type caption struct {
	id, text string
	style    CaptionStyle

	age float64
	// hideAge >= 0 表示正在淡出，hideAlpha 为开始淡出时的透明度
	hideAge   float64
	hideAlpha float64
}

func (c *caption) alpha() float64 {
	in := 1.0
	if c.style.FadeInSecs > 0 {
		in = c.style.FadeIn.At(c.age / c.style.FadeInSecs)
	}
	if c.hideAge < 0 {
		return in
	}
	if c.style.FadeOutSecs <= 0 {
		return 0
	}
	return c.hideAlpha * c.style.FadeOut.At(c.hideAge/c.style.FadeOutSecs)
}

func (c *caption) gone() bool {
	return c.hideAge >= 0 && c.hideAge >= c.style.FadeOutSecs
}

// CaptionLayer 覆盖层字幕
// 由导演的 overlay 事件驱动；同一 ID 同时只存在一条字幕
type CaptionLayer struct {
	styles   map[string]CaptionStyle
	captions []*caption
}

// NewCaptionLayer 创建字幕层，styles 为 nil 时使用内置样式
func NewCaptionLayer(styles map[string]CaptionStyle) *CaptionLayer {
	if styles == nil {
		styles = DefaultCaptionStyles()
	}
	return &CaptionLayer{styles: styles}
}

// Handle 处理 overlay 事件，可直接注册为 Signals.OnOverlay 观察者
func (l *CaptionLayer) Handle(ev show.OverlayEvent) {
	switch ev.Action {
	case show.OverlayShow:
		l.Show(ev.ID, ev.Text)
	case show.OverlayHide:
		l.Hide(ev.ID)
	}
}

// Show 显示字幕；已存在的同 ID 字幕被替换并重新淡入
func (l *CaptionLayer) Show(id, txt string) {
	style, ok := l.styles[id]
	if !ok {
		style = l.styles[""]
	}
	if txt == "" {
		txt = style.DefaultText
	}
	if txt == "" {
		txt = id
	}

	l.remove(id)
	l.captions = append(l.captions, &caption{id: id, text: txt, style: style, hideAge: -1})
	log.Printf("[Caption] 显示 %s: %q", id, txt)
}

// Hide 开始淡出字幕，未显示的 ID 忽略
func (l *CaptionLayer) Hide(id string) {
	for _, c := range l.captions {
		if c.id == id && c.hideAge < 0 {
			c.hideAlpha = c.alpha()
			c.hideAge = 0
			log.Printf("[Caption] 隐藏 %s", id)
		}
	}
}

// Update 推进淡入淡出，移除淡出完成的字幕
func (l *CaptionLayer) Update(dt float64) {
	kept := l.captions[:0]
	for _, c := range l.captions {
		c.age += dt
		if c.hideAge >= 0 {
			c.hideAge += dt
		}
		if !c.gone() {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(l.captions); i++ {
		l.captions[i] = nil
	}
	l.captions = kept
}

// Alpha 返回字幕当前透明度，不存在时为 0
func (l *CaptionLayer) Alpha(id string) float64 {
	for _, c := range l.captions {
		if c.id == id {
			return c.alpha()
		}
	}
	return 0
}

// Text 返回字幕文字
func (l *CaptionLayer) Text(id string) (string, bool) {
	for _, c := range l.captions {
		if c.id == id {
			return c.text, true
		}
	}
	return "", false
}

// Len 当前字幕数量（含淡出中的）
func (l *CaptionLayer) Len() int {
	return len(l.captions)
}

// Clear 立即移除所有字幕
func (l *CaptionLayer) Clear() {
	l.captions = nil
}

// Draw 居中绘制所有字幕
func (l *CaptionLayer) Draw(screen *ebiten.Image, fonts *Fonts, scale float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, c := range l.captions {
		a := c.alpha()
		if a <= 0 {
			continue
		}
		face := fonts.Face(c.style.Size * scale)
		tw, th := text.Measure(c.text, face, 0)

		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(w)/2-tw/2, float64(h)*c.style.Y-th/2)
		op.ColorScale.ScaleWithColor(c.style.Color)
		op.ColorScale.ScaleAlpha(float32(a))
		text.Draw(screen, c.text, face, op)
	}
}

func (l *CaptionLayer) remove(id string) {
	kept := l.captions[:0]
	for _, c := range l.captions {
		if c.id != id {
			kept = append(kept, c)
		}
	}
	l.captions = kept
}
