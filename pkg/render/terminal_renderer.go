package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/systems"
)

// halfBlock 上半块字符：前景色为上半格，背景色为下半格
const halfBlock = '▀'

type rgb struct {
	r, g, b float32
}

// TerminalRenderer composites the show into terminal cells.
//
// Every cell holds two vertically stacked sub-pixels drawn with a half
// block, so the sample grid is cols x rows*2. Colour accumulates additively
// in float RGB and is clamped only when flushed to the screen.
type TerminalRenderer struct {
	screen tcell.Screen

	// CellWidth and CellHeight give the simulation-pixel size of one cell.
	CellWidth, CellHeight float64

	cols, rows int
	buf        []rgb
}

// NewTerminalRenderer sizes the sample grid from the screen.
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight float64) *TerminalRenderer {
	t := &TerminalRenderer{
		screen:     screen,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
	}
	t.syncSize()
	return t
}

// ViewportFor returns the simulation viewport matching a terminal size.
func (t *TerminalRenderer) ViewportFor(cols, rows int) (width, height float64) {
	return float64(cols) * t.CellWidth, float64(rows) * t.CellHeight
}

// Resize re-reads the terminal size; the pixel arguments are implied by it.
func (t *TerminalRenderer) Resize(int, int) {
	t.syncSize()
}

func (t *TerminalRenderer) syncSize() {
	cols, rows := t.screen.Size()
	if cols == t.cols && rows == t.rows && t.buf != nil {
		return
	}
	t.cols, t.rows = cols, rows
	t.buf = make([]rgb, cols*rows*2)
}

// Fade multiplies every sample by 1-alpha.
func (t *TerminalRenderer) Fade(alpha float64) {
	k := float32(1 - math.Max(0, math.Min(1, alpha)))
	for i := range t.buf {
		t.buf[i].r *= k
		t.buf[i].g *= k
		t.buf[i].b *= k
	}
}

// BeginAdditive is a no-op: every draw into the buffer adds.
func (t *TerminalRenderer) BeginAdditive() {}

func (t *TerminalRenderer) DrawRocket(r *components.RocketComponent) {
	cr, cg, cb := r.Color.RGBFloat()
	t.polyline([]components.Vec2{systems.RocketTail(r), {X: r.X, Y: r.Y}}, rgb{cr, cg, cb})
}

func (t *TerminalRenderer) DrawParticle(p *components.ParticleComponent) {
	cr, cg, cb := p.Color.RGBFloat()
	a := float32(p.Opacity)
	c := rgb{cr * a, cg * a, cb * a}
	t.polyline(systems.StrokePoints(p), c)
	if p.Sparkle {
		gx, gy := t.sample(p.X, p.Y)
		t.add(gx, gy, rgb{a, a, a})
	}
}

// EndFrame writes the buffer to the screen and shows it.
func (t *TerminalRenderer) EndFrame() {
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			top := t.buf[(2*y)*t.cols+x]
			bottom := t.buf[(2*y+1)*t.cols+x]
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// Sample returns the accumulated colour of a sub-pixel, for tests and HUDs.
func (t *TerminalRenderer) Sample(gx, gy int) (r, g, b float32) {
	if gx < 0 || gy < 0 || gx >= t.cols || gy >= t.rows*2 {
		return 0, 0, 0
	}
	c := t.buf[gy*t.cols+gx]
	return c.r, c.g, c.b
}

// sample 把模拟像素坐标映射到采样网格
func (t *TerminalRenderer) sample(x, y float64) (int, int) {
	return int(math.Floor(x / t.CellWidth)), int(math.Floor(y / (t.CellHeight / 2)))
}

func (t *TerminalRenderer) add(gx, gy int, c rgb) {
	if gx < 0 || gy < 0 || gx >= t.cols || gy >= t.rows*2 {
		return
	}
	i := gy*t.cols + gx
	t.buf[i].r += c.r
	t.buf[i].g += c.g
	t.buf[i].b += c.b
}

// polyline 用 Bresenham 画线，折线连接处的采样点只累加一次
func (t *TerminalRenderer) polyline(pts []components.Vec2, c rgb) {
	if len(pts) == 0 {
		return
	}
	x0, y0 := t.sample(pts[0].X, pts[0].Y)
	if len(pts) == 1 {
		t.add(x0, y0, c)
		return
	}
	t.add(x0, y0, c)
	for _, pt := range pts[1:] {
		x1, y1 := t.sample(pt.X, pt.Y)
		t.line(x0, y0, x1, y1, c)
		x0, y0 = x1, y1
	}
}

// line 累加 (x0,y0) 之后直到 (x1,y1) 的采样点，不含起点
func (t *TerminalRenderer) line(x0, y0, x1, y1 int, c rgb) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for x0 != x1 || y0 != y1 {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		t.add(x0, y0, c)
	}
}

func toColor(c rgb) tcell.Color {
	return tcell.NewRGBColor(channel(c.r), channel(c.g), channel(c.b))
}

func channel(v float32) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v*255 + 0.5)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
