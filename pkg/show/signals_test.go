package show

import (
	"errors"
	"testing"

	"github.com/gonewx/fireworks/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSignals_CueFailuresAreSwallowed(t *testing.T) {
	s := NewSignals()
	var reached []string

	s.OnCue(func(types.CueKind) error {
		reached = append(reached, "error")
		return errors.New("audio device blocked")
	})
	s.OnCue(func(types.CueKind) error {
		reached = append(reached, "panic")
		panic("decoder exploded")
	})
	s.OnCue(func(types.CueKind) error {
		reached = append(reached, "ok")
		return nil
	})

	assert.NotPanics(t, func() { s.emitCue(types.CueLaunch) })
	assert.Equal(t, []string{"error", "panic", "ok"}, reached)
}

func TestSignals_CompleteAndOverlayFanOut(t *testing.T) {
	s := NewSignals()
	completes, overlays := 0, 0
	for i := 0; i < 3; i++ {
		s.OnComplete(func() { completes++ })
		s.OnOverlay(func(OverlayEvent) { overlays++ })
	}

	s.emitComplete()
	s.emitOverlay(OverlayEvent{ID: "finale"})

	assert.Equal(t, 3, completes)
	assert.Equal(t, 3, overlays)
}

func TestOverlayAction_String(t *testing.T) {
	assert.Equal(t, "show", OverlayShow.String())
	assert.Equal(t, "hide", OverlayHide.String())
}
