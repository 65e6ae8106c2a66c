package scenes

import (
	"testing"

	"github.com/gonewx/fireworks/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type stubScene struct{ name string }

func (s *stubScene) Update(float64) {}

func (s *stubScene) Draw(*ebiten.Image) {}

func newTestSceneManager(loaded *[]string) *game.SceneManager {
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(name string) game.Scene {
		*loaded = append(*loaded, name)
		return &stubScene{name: name}
	})
	return sm
}

func TestCountdownScene_Phases(t *testing.T) {
	var loaded []string
	sm := newTestSceneManager(&loaded)
	s := NewCountdownScene(sm, nil, SceneShow)
	sm.SwitchTo(s)

	const dt = 1.0 / 60
	step := func(secs float64) {
		for i := 0; i < int(secs*60+0.5); i++ {
			s.advance(dt)
		}
	}

	assert.Equal(t, PhaseDark, s.Phase())
	step(1.4)
	assert.Equal(t, PhaseDark, s.Phase())
	assert.Zero(t, s.captions.Len())

	step(0.2)
	assert.Equal(t, PhaseReady, s.Phase())
	txt, ok := s.captions.Text("ready")
	assert.True(t, ok)
	assert.Equal(t, "READY?", txt)

	step(2.5)
	assert.Equal(t, PhasePause, s.Phase())
	assert.Empty(t, loaded)

	step(0.5)
	assert.Equal(t, PhaseDone, s.Phase())
	assert.Equal(t, []string{SceneShow}, loaded)

	step(1)
	assert.Len(t, loaded, 1, "the show is loaded once")
}

func TestCountdownScene_Skip(t *testing.T) {
	var loaded []string
	sm := newTestSceneManager(&loaded)
	s := NewCountdownScene(sm, nil, SceneShow)

	s.advance(0.1)
	s.Skip()
	s.Skip()

	assert.Equal(t, PhaseDone, s.Phase())
	assert.Equal(t, []string{SceneShow}, loaded)
}

func TestCountdownScene_Darkness(t *testing.T) {
	s := NewCountdownScene(nil, nil, "")
	assert.Zero(t, s.darkness())
	s.advance(countdownDarkSecs / 2)
	assert.Greater(t, s.darkness(), 0.5)
	s.advance(countdownDarkSecs)
	assert.Equal(t, 1.0, s.darkness())
}
