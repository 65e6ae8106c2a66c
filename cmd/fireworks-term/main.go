// Package main plays the fireworks show in a terminal.
//
// Each cell is split into two sub-pixels with a half block, so a 160x45
// terminal shows a 1280x720 viewport at the default cell size.
//
// Usage:
//
//	go run ./cmd/fireworks-term [flags]
//
// Controls:
//
//	q / Esc / Ctrl+C  Quit
//	m                 Toggle sound
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/render"
	"github.com/gonewx/fireworks/pkg/show"
	"github.com/gonewx/fireworks/pkg/types"
)

var (
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = clock)")
	muteFlag    = flag.Bool("mute", false, "Start with sound off")
	loopFlag    = flag.Bool("loop", false, "Keep running after the show completes")
	shellsFlag  = flag.String("shells", "data/shells.yaml", "Shell catalog file")
	physicsFlag = flag.String("physics", "data/physics.yaml", "Physics config file")
	scriptFlag  = flag.String("script", "data/show.yaml", "Show script file")
	verboseFlag = flag.Bool("verbose", false, "Log to fireworks-term.log")
)

func main() {
	flag.Parse()

	if *verboseFlag {
		// 屏幕被 tcell 接管，日志写文件
		f, err := os.Create("fireworks-term.log")
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	catalog, err := config.LoadShellCatalog(*shellsFlag)
	if err != nil {
		return err
	}
	physics, err := config.LoadPhysicsConfig(*physicsFlag)
	if err != nil {
		return err
	}
	script, err := config.LoadShowScript(*scriptFlag, catalog)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.HideCursor()
	screen.Clear()

	renderer := render.NewTerminalRenderer(screen, config.TerminalCellWidth, config.TerminalCellHeight)
	cols, rows := screen.Size()
	w, h := renderer.ViewportFor(cols, rows)

	sim, err := show.New(show.Options{
		Width:    w,
		Height:   h,
		Catalog:  catalog,
		Physics:  physics,
		Script:   script,
		Renderer: renderer,
		Seed:     *seedFlag,
	})
	if err != nil {
		return err
	}

	cues := newCuePlayer(*seedFlag)
	cues.enabled.Store(!*muteFlag)
	if err := cues.init(); err != nil {
		log.Printf("[Term] Warning: 音频初始化失败: %v", err)
	} else {
		sim.Signals().OnCue(cues.play)
	}
	sim.Signals().OnOverlay(func(ev show.OverlayEvent) {
		log.Printf("[Term] overlay %s %s %q", ev.Action, ev.ID, ev.Text)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(show.FrameInterval)
	defer ticker.Stop()

	loop := show.NewLoop(sim)
	loop.StopOnComplete = !*loopFlag

	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx, ticker.C)
	}()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case err := <-done:
			return err
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					return <-done
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'm' {
					cues.enabled.Store(!cues.enabled.Load())
				}
			case *tcell.EventResize:
				screen.Sync()
				cols, rows := screen.Size()
				w, h := renderer.ViewportFor(cols, rows)
				sim.Resize(w, h, 1)
			}
		}
	}
}

// cuePlayer plays synthesized cues through the system speaker.
type cuePlayer struct {
	rate    beep.SampleRate
	rng     *rand.Rand
	mixer   *beep.Mixer
	enabled atomic.Bool
}

func newCuePlayer(seed int64) *cuePlayer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &cuePlayer{
		rate:  game.CueSampleRate,
		rng:   rand.New(rand.NewSource(seed)),
		mixer: &beep.Mixer{},
	}
}

func (c *cuePlayer) init() error {
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	return nil
}

// play is registered as a cue observer; it runs on the simulation goroutine.
func (c *cuePlayer) play(kind types.CueKind) error {
	if !c.enabled.Load() {
		return nil
	}
	s, err := game.SynthCue(kind, c.rate, c.rng)
	if err != nil {
		return err
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	return nil
}
