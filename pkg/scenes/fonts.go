package scenes

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// Fonts caches text faces of the caption font by size.
type Fonts struct {
	source *text.GoTextFaceSource

	mu    sync.Mutex
	faces map[float64]*text.GoTextFace
}

// NewFonts loads the embedded Go Bold face source.
func NewFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &Fonts{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// Face returns the face for a pixel size, creating it on first use.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    f.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	f.faces[size] = face
	return face
}
