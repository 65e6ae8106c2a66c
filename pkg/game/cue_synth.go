package game

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/fireworks/pkg/types"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// CueSampleRate 音效采样率，与 audio.Context 保持一致
const CueSampleRate = beep.SampleRate(48000)

// 音效时长
const (
	launchCueDuration    = 700 * time.Millisecond
	explosionCueDuration = 1200 * time.Millisecond
)

// sweep 频率线性滑动的正弦振荡器（发射哨音）
type sweep struct {
	from, to float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) *sweep {
	return &sweep{from: from, to: to, total: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise 白噪声；随机源注入以便测试可复现
type noise struct {
	rng      *rand.Rand
	position int
	total    int
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.position >= n.total {
			return i, i > 0
		}
		v := n.rng.Float64()*2 - 1
		samples[i][0], samples[i][1] = v, v
		n.position++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// decayEnvelope 线性起音 + 指数衰减
type decayEnvelope struct {
	streamer beep.Streamer
	position int
	attack   int
	tau      float64
}

func newDecayEnvelope(s beep.Streamer, attack, tau time.Duration, rate beep.SampleRate) *decayEnvelope {
	return &decayEnvelope{streamer: s, attack: rate.N(attack), tau: float64(rate.N(tau))}
}

func (e *decayEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else {
			vol = math.Exp(-float64(e.position-e.attack) / e.tau)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// LaunchCue 发射哨音：上滑的正弦 + 少量气流噪声
func LaunchCue(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	whistle := newDecayEnvelope(newSweep(700, 2100, launchCueDuration, rate), 40*time.Millisecond, 450*time.Millisecond, rate)
	hiss := newDecayEnvelope(&noise{rng: rng, total: rate.N(launchCueDuration)}, 10*time.Millisecond, 200*time.Millisecond, rate)
	return beep.Mix(withVolume(whistle, 0.35), withVolume(hiss, 0.15))
}

// ExplosionCue 爆炸声：低频闷响 + 长衰减噪声 + 迟到的噼啪声
func ExplosionCue(rate beep.SampleRate, rng *rand.Rand) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, 55)
	if err != nil {
		return nil, fmt.Errorf("failed to create thump tone: %w", err)
	}
	thump := newDecayEnvelope(beep.Take(rate.N(explosionCueDuration), tone), 5*time.Millisecond, 180*time.Millisecond, rate)
	boom := newDecayEnvelope(&noise{rng: rng, total: rate.N(explosionCueDuration)}, 5*time.Millisecond, 350*time.Millisecond, rate)

	crackleDelay := 250 * time.Millisecond
	crackle := beep.Seq(
		beep.Silence(rate.N(crackleDelay)),
		newDecayEnvelope(&noise{rng: rng, total: rate.N(explosionCueDuration - crackleDelay)}, 2*time.Millisecond, 60*time.Millisecond, rate),
	)

	return beep.Mix(withVolume(thump, 0.8), withVolume(boom, 0.45), withVolume(crackle, 0.2)), nil
}

// SynthCue 合成指定类型的音效
func SynthCue(kind types.CueKind, rate beep.SampleRate, rng *rand.Rand) (beep.Streamer, error) {
	switch kind {
	case types.CueLaunch:
		return LaunchCue(rate, rng), nil
	case types.CueExplosion:
		return ExplosionCue(rate, rng)
	default:
		return nil, fmt.Errorf("unknown cue kind %d", kind)
	}
}

// RenderPCM 将流渲染为 16 位小端立体声 PCM（ebiten audio 的原生格式）
func RenderPCM(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	var frame [4]byte
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(smp[0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(smp[1])))
			out = append(out, frame[:]...)
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to render cue: %w", err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
