package show

import (
	"log"
	"sync"

	"github.com/gonewx/fireworks/pkg/types"
)

// OverlayAction 字幕事件类型
type OverlayAction int

const (
	OverlayShow OverlayAction = iota
	OverlayHide
)

func (a OverlayAction) String() string {
	if a == OverlayHide {
		return "hide"
	}
	return "show"
}

// OverlayEvent 通知宿主显示或隐藏一条字幕
type OverlayEvent struct {
	Action OverlayAction
	ID     string
	Text   string
	Frame  int
}

// Signals 观察者注册表
//
// 字幕、音效与完成回调各自独立注册，互不影响；模拟核心只通过这里通知宿主。
// 音效观察者返回的错误或 panic 会被记录并吞掉，视觉模拟不受影响。
type Signals struct {
	mu       sync.Mutex
	overlay  []func(OverlayEvent)
	cue      []func(types.CueKind) error
	complete []func()
}

// NewSignals 创建空注册表
func NewSignals() *Signals {
	return &Signals{}
}

// OnOverlay 注册字幕观察者
func (s *Signals) OnOverlay(fn func(OverlayEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = append(s.overlay, fn)
}

// OnCue 注册音效观察者
func (s *Signals) OnCue(fn func(types.CueKind) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cue = append(s.cue, fn)
}

// OnComplete 注册演出结束回调
func (s *Signals) OnComplete(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete = append(s.complete, fn)
}

func (s *Signals) emitOverlay(ev OverlayEvent) {
	s.mu.Lock()
	observers := append([]func(OverlayEvent){}, s.overlay...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

func (s *Signals) emitCue(kind types.CueKind) {
	s.mu.Lock()
	observers := append([]func(types.CueKind) error{}, s.cue...)
	s.mu.Unlock()

	for _, fn := range observers {
		callCue(fn, kind)
	}
}

func callCue(fn func(types.CueKind) error, kind types.CueKind) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ShowSignals] 音效 %s 观察者 panic（已忽略）: %v", kind, r)
		}
	}()
	if err := fn(kind); err != nil {
		log.Printf("[ShowSignals] 音效 %s 播放失败（已忽略）: %v", kind, err)
	}
}

func (s *Signals) emitComplete() {
	s.mu.Lock()
	observers := append([]func(){}, s.complete...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}
