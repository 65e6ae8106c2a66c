// Package glyph turns short strings into sparse point clouds sampled from
// their filled glyph area. Text shells use the points as per-particle
// launch offsets.
package glyph

import (
	"fmt"
	"image"
	"math"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// SampleStride is the grid spacing, in pixels, between sampled raster cells.
	SampleStride = 4
	// AlphaThreshold is the coverage a cell must exceed to become a point.
	AlphaThreshold = 128

	// padding keeps anti-aliased edges inside the scratch raster.
	padding = 4
)

// Point is an offset from the ink bounding-box centre, y pointing down.
type Point struct {
	X, Y float64
}

type cacheKey struct {
	text string
	size float64
}

// Rasterizer renders strings with one font and caches the sampled points.
// It is safe for concurrent use.
type Rasterizer struct {
	font      *opentype.Font
	stride    int
	threshold uint8

	mu    sync.Mutex
	faces map[float64]font.Face
	cache map[cacheKey][]Point
}

// NewRasterizer parses an OpenType/TrueType font.
func NewRasterizer(ttf []byte) (*Rasterizer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Rasterizer{
		font:      f,
		stride:    SampleStride,
		threshold: AlphaThreshold,
		faces:     make(map[float64]font.Face),
		cache:     make(map[cacheKey][]Point),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultRast *Rasterizer
	defaultErr  error
)

// Default returns a shared rasterizer using the embedded Go Bold font.
func Default() (*Rasterizer, error) {
	defaultOnce.Do(func() {
		defaultRast, defaultErr = NewRasterizer(gobold.TTF)
	})
	return defaultRast, defaultErr
}

// Rasterize samples text rendered at sizePx pixels.
//
// Empty or whitespace-only text, a non-positive size, or any rune the font
// has no glyph for yields nil. The result is shared with the cache and must
// not be modified.
func (r *Rasterizer) Rasterize(text string, sizePx float64) []Point {
	if sizePx <= 0 || !r.renderable(text) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{text: text, size: sizePx}
	if pts, ok := r.cache[key]; ok {
		return pts
	}

	face, err := r.faceLocked(sizePx)
	if err != nil {
		return nil
	}
	pts := r.sample(face, text)
	r.cache[key] = pts
	return pts
}

// renderable reports whether text has at least one visible rune and every
// visible rune maps to a glyph.
func (r *Rasterizer) renderable(text string) bool {
	var buf sfnt.Buffer
	visible := false
	for _, ch := range text {
		if unicode.IsSpace(ch) {
			continue
		}
		idx, err := r.font.GlyphIndex(&buf, ch)
		if err != nil || idx == 0 {
			return false
		}
		visible = true
	}
	return visible
}

func (r *Rasterizer) faceLocked(sizePx float64) (font.Face, error) {
	if face, ok := r.faces[sizePx]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	r.faces[sizePx] = face
	return face, nil
}

func (r *Rasterizer) sample(face font.Face, text string) []Point {
	bounds, _ := font.BoundString(face, text)
	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return nil
	}

	w := maxX - minX + 2*padding
	h := maxY - minY + 2*padding
	dst := image.NewAlpha(image.Rect(0, 0, w, h))

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(padding-minX, padding-minY),
	}
	d.DrawString(text)

	// Ink box centre in raster coordinates.
	cx := float64(padding) + (fixedToFloat(bounds.Max.X)-fixedToFloat(bounds.Min.X))/2 + (fixedToFloat(bounds.Min.X) - float64(minX))
	cy := float64(padding) + (fixedToFloat(bounds.Max.Y)-fixedToFloat(bounds.Min.Y))/2 + (fixedToFloat(bounds.Min.Y) - float64(minY))

	var pts []Point
	for y := 0; y < h; y += r.stride {
		for x := 0; x < w; x += r.stride {
			if dst.AlphaAt(x, y).A > r.threshold {
				pts = append(pts, Point{X: float64(x) - cx, Y: float64(y) - cy})
			}
		}
	}
	return pts
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Bounds returns the axis-aligned box enclosing pts.
func Bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
