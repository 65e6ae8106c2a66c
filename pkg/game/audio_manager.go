package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/fireworks/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrNoAudioContext 音频上下文不可用（例如设备被占用）
var ErrNoAudioContext = errors.New("audio context unavailable")

// maxVoicesPerCue 同一音效允许同时播放的数量
// 终曲四发同时爆炸，需要至少 4 个声部
const maxVoicesPerCue = 6

// AudioManager 音效管理器
// 职责：
//   - 启动时用 beep 合成所有音效并缓存 PCM 数据
//   - 为每种音效维护一个播放器池，允许重叠播放
//   - 从 SettingsManager 读取开关与音量
//
// HandleCue 可直接注册为 show.Signals 的音效观察者；
// 播放失败只返回错误，由调用方记录后吞掉，不影响画面。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	pcm             map[types.CueKind][]byte
	players         map[types.CueKind][]*audio.Player
}

// NewAudioManager 创建音效管理器并合成音效
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式，PlayCue 返回 ErrNoAudioContext）
//   - sm: SettingsManager 实例，可为 nil（仅内存设置）
//   - seed: 噪声随机种子
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, seed int64) (*AudioManager, error) {
	if sm == nil {
		sm, _ = NewSettingsManager(nil)
	}
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm:             make(map[types.CueKind][]byte),
		players:         make(map[types.CueKind][]*audio.Player),
	}

	rng := rand.New(rand.NewSource(seed))
	for _, kind := range []types.CueKind{types.CueLaunch, types.CueExplosion} {
		s, err := SynthCue(kind, CueSampleRate, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize %s cue: %w", kind, err)
		}
		data, err := RenderPCM(s)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s cue: %w", kind, err)
		}
		am.pcm[kind] = data
		log.Printf("[AudioManager] 合成音效 %s: %d 字节", kind, len(data))
	}
	return am, nil
}

// HandleCue 音效观察者入口
func (am *AudioManager) HandleCue(kind types.CueKind) error {
	return am.PlayCue(kind)
}

// PlayCue 播放音效
// 音效关闭时静默返回 nil
func (am *AudioManager) PlayCue(kind types.CueKind) error {
	if !am.SoundEnabled() {
		return nil
	}
	if am.context == nil {
		return ErrNoAudioContext
	}

	player, err := am.voice(kind)
	if err != nil {
		return err
	}
	player.SetVolume(am.SoundVolume())
	if err := player.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind %s cue: %w", kind, err)
	}
	player.Play()
	return nil
}

// voice 返回一个空闲播放器；池满时复用最早的一个
func (am *AudioManager) voice(kind types.CueKind) (*audio.Player, error) {
	pool := am.players[kind]
	for _, p := range pool {
		if !p.IsPlaying() {
			return p, nil
		}
	}
	if len(pool) >= maxVoicesPerCue {
		p := pool[0]
		am.players[kind] = append(pool[1:], p)
		return p, nil
	}

	data, ok := am.pcm[kind]
	if !ok {
		return nil, fmt.Errorf("no samples for %s cue", kind)
	}
	p := am.context.NewPlayerFromBytes(data)
	am.players[kind] = append(pool, p)
	return p, nil
}

// PCM 返回合成后的音效数据
func (am *AudioManager) PCM(kind types.CueKind) []byte {
	return am.pcm[kind]
}

// SoundEnabled 音效开关
func (am *AudioManager) SoundEnabled() bool {
	return am.settingsManager.GetSettings().SoundEnabled
}

// ToggleSound 切换音效开关，返回新状态
// 关闭时立即停止正在播放的音效
func (am *AudioManager) ToggleSound() bool {
	enabled := !am.SoundEnabled()
	am.settingsManager.SetSoundEnabled(enabled)
	if !enabled {
		for _, pool := range am.players {
			for _, p := range pool {
				p.Pause()
			}
		}
	}
	log.Printf("[AudioManager] 音效 %v", enabled)
	return enabled
}

// SoundVolume 获取音效音量设置
func (am *AudioManager) SoundVolume() float64 {
	return am.settingsManager.GetSettings().SoundVolume
}

// SetSoundVolume 设置音效音量，立即应用到所有播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.settingsManager.SetSoundVolume(volume)
	v := am.SoundVolume()
	for _, pool := range am.players {
		for _, p := range pool {
			p.SetVolume(v)
		}
	}
}
