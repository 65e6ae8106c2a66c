// Package render 提供 systems.Renderer 的具体实现
//
// LayerRenderer 使用 Ebitengine 离屏图层实现拖尾：每帧先按比例擦除图层，
// 再以加法混合绘制火箭与粒子，最后由场景把图层贴到屏幕上。
// TerminalRenderer 在终端单元格上实现同样的合成规则。
package render

import (
	"image"
	"image/color"
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（索引为 uint16）
const maxBatchVertices = 60000

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// additiveBlend 加法混合：src + dst
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// LayerRenderer 持久离屏图层渲染器
type LayerRenderer struct {
	layer         *ebiten.Image
	width, height int

	// RocketWidth 火箭拖尾线宽（像素）
	RocketWidth float32
	// SparkleArm 闪烁十字的半臂长，以粒子尺寸为单位
	SparkleArm float64

	additive bool
	vertices []ebiten.Vertex
	indices  []uint16

	// 统计（调试 HUD 使用）
	strokes   int
	flushes   int
	lastDrawn int
}

// NewLayerRenderer 创建指定尺寸的图层渲染器
func NewLayerRenderer(width, height int) *LayerRenderer {
	r := &LayerRenderer{
		RocketWidth: 2,
		SparkleArm:  3,
	}
	r.Resize(width, height)
	return r
}

// Resize 重建图层。旧图层内容丢弃（拖尾在几帧内自然恢复）
func (r *LayerRenderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.layer != nil {
		if width == r.width && height == r.height {
			return
		}
		r.layer.Deallocate()
	}
	r.layer = ebiten.NewImage(width, height)
	r.width, r.height = width, height
	log.Printf("[LayerRenderer] 图层尺寸 %dx%d", width, height)
}

// Size 返回图层尺寸
func (r *LayerRenderer) Size() (int, int) {
	return r.width, r.height
}

// Layer 返回离屏图层
func (r *LayerRenderer) Layer() *ebiten.Image {
	return r.layer
}

// Fade 以 destination-out 混合擦除图层的 alpha 比例
func (r *LayerRenderer) Fade(alpha float64) {
	r.additive = false
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.strokes = 0
	r.flushes = 0
	if alpha <= 0 {
		return
	}
	if alpha >= 1 {
		r.layer.Clear()
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.width), float64(r.height))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = ebiten.BlendDestinationOut
	r.layer.DrawImage(whiteSubImage, op)
}

// BeginAdditive 之后的绘制进入加法批次
func (r *LayerRenderer) BeginAdditive() {
	r.additive = true
}

// DrawRocket 绘制火箭头部与拖尾
func (r *LayerRenderer) DrawRocket(rocket *components.RocketComponent) {
	tail := systems.RocketTail(rocket)
	cr, cg, cb := rocket.Color.RGBFloat()
	r.stroke([]components.Vec2{tail, {X: rocket.X, Y: rocket.Y}}, r.RocketWidth, cr, cg, cb, 1)
}

// DrawParticle 绘制粒子历史折线，闪烁粒子额外绘制十字
func (r *LayerRenderer) DrawParticle(p *components.ParticleComponent) {
	cr, cg, cb := p.Color.RGBFloat()
	a := float32(p.Opacity)
	width := float32(p.Size)

	r.stroke(systems.StrokePoints(p), width, cr, cg, cb, a)

	if p.Sparkle {
		arm := p.Size * r.SparkleArm
		r.stroke([]components.Vec2{{X: p.X - arm, Y: p.Y}, {X: p.X + arm, Y: p.Y}}, width/2, cr, cg, cb, a)
		r.stroke([]components.Vec2{{X: p.X, Y: p.Y - arm}, {X: p.X, Y: p.Y + arm}}, width/2, cr, cg, cb, a)
	}
}

// EndFrame 提交剩余批次
func (r *LayerRenderer) EndFrame() {
	r.flush()
	r.lastDrawn = r.strokes
}

// Draw 把图层贴到屏幕（黑色背景）
func (r *LayerRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(r.layer, nil)
}

// LastStrokeCount 返回上一帧绘制的线段数
func (r *LayerRenderer) LastStrokeCount() int {
	return r.lastDrawn
}

func (r *LayerRenderer) stroke(pts []components.Vec2, width float32, cr, cg, cb, a float32) {
	if len(pts) == 0 || a <= 0 || width <= 0 {
		return
	}
	if len(pts) == 1 {
		pts = append(pts, pts[0])
	}
	// 单点折线：退化为极短线段，保证粒子可见
	if len(pts) == 2 && pts[0] == pts[1] {
		pts[0].X -= 0.5
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}

	if len(r.vertices) > maxBatchVertices {
		r.flush()
	}

	start := len(r.vertices)
	r.vertices, r.indices = path.AppendVerticesAndIndicesForStroke(r.vertices, r.indices, &vector.StrokeOptions{
		Width:    width,
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})
	for i := start; i < len(r.vertices); i++ {
		v := &r.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = cr * a
		v.ColorG = cg * a
		v.ColorB = cb * a
		v.ColorA = a
	}
	r.strokes++
}

func (r *LayerRenderer) flush() {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if r.additive {
		op.Blend = additiveBlend
	}
	r.layer.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.flushes++
}
