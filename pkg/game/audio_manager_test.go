package game

import (
	"testing"

	"github.com/gonewx/fireworks/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// audio.NewContext can only be called once, so we share it across all tests
var testAudioContext = audio.NewContext(int(CueSampleRate))

func TestAudioManager_SynthesizesAllCues(t *testing.T) {
	am, err := NewAudioManager(nil, nil, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, am.PCM(types.CueLaunch))
	assert.NotEmpty(t, am.PCM(types.CueExplosion))
	assert.Equal(t, 0, len(am.PCM(types.CueLaunch))%4, "16-bit stereo frames")
}

func TestAudioManager_NoContext(t *testing.T) {
	am, err := NewAudioManager(nil, nil, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, am.HandleCue(types.CueLaunch), ErrNoAudioContext)

	am.ToggleSound()
	assert.NoError(t, am.HandleCue(types.CueLaunch), "muted cues are dropped silently")
}

func TestAudioManager_VoicePool(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am, err := NewAudioManager(testAudioContext, sm, 1)
	require.NoError(t, err)

	for i := 0; i < maxVoicesPerCue+3; i++ {
		require.NoError(t, am.PlayCue(types.CueExplosion))
	}
	assert.LessOrEqual(t, len(am.players[types.CueExplosion]), maxVoicesPerCue)
	assert.NotEmpty(t, am.players[types.CueExplosion])

	am.SetSoundVolume(0.25)
	assert.Equal(t, 0.25, sm.GetSettings().SoundVolume)
	for _, p := range am.players[types.CueExplosion] {
		assert.InDelta(t, 0.25, p.Volume(), 1e-9)
	}
}

func TestAudioManager_ToggleSound(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am, err := NewAudioManager(testAudioContext, sm, 1)
	require.NoError(t, err)

	assert.False(t, am.ToggleSound())
	assert.False(t, sm.GetSettings().SoundEnabled)
	assert.True(t, am.ToggleSound())
}
