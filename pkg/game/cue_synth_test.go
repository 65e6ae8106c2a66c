package game

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
	"time"

	"github.com/gonewx/fireworks/pkg/types"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_StreamsExactDuration(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := newSweep(100, 200, 100*time.Millisecond, rate)

	buf := make([][2]float64, 300)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			assert.LessOrEqual(t, smp[0], 1.0)
			assert.GreaterOrEqual(t, smp[0], -1.0)
		}
		if !ok {
			break
		}
	}
	assert.Equal(t, rate.N(100*time.Millisecond), total)
}

func TestDecayEnvelope_ShapesAmplitude(t *testing.T) {
	rate := beep.SampleRate(1000)
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	env := newDecayEnvelope(src, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, ok := env.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 100, n)

	assert.Zero(t, buf[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, buf[5][0], 1e-9)
	assert.InDelta(t, 1.0, buf[10][0], 1e-9)
	assert.Less(t, buf[60][0], buf[30][0], "decays after the attack")
}

func TestRenderPCM_Lengths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	launch, err := SynthCue(types.CueLaunch, CueSampleRate, rng)
	require.NoError(t, err)
	data, err := RenderPCM(launch)
	require.NoError(t, err)
	assert.Equal(t, CueSampleRate.N(launchCueDuration)*4, len(data))

	boom, err := SynthCue(types.CueExplosion, CueSampleRate, rng)
	require.NoError(t, err)
	data, err = RenderPCM(boom)
	require.NoError(t, err)
	assert.Equal(t, CueSampleRate.N(explosionCueDuration)*4, len(data))

	// 非静音
	var peak int16
	r := bytes.NewReader(data)
	for {
		var v int16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			break
		}
		if v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, int16(1000))
}

func TestSynthCue_Deterministic(t *testing.T) {
	render := func() []byte {
		s, err := SynthCue(types.CueExplosion, CueSampleRate, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		data, err := RenderPCM(s)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, render(), render())
}

func TestSynthCue_UnknownKind(t *testing.T) {
	_, err := SynthCue(types.CueKind(99), CueSampleRate, rand.New(rand.NewSource(1)))
	assert.ErrorContains(t, err, "unknown cue kind")
}

func TestToInt16Clamps(t *testing.T) {
	assert.Equal(t, int16(32767), toInt16(2))
	assert.Equal(t, int16(-32767), toInt16(-2))
	assert.Equal(t, int16(0), toInt16(0))
}
