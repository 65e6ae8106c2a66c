// Package show runs a scripted fireworks show: the director turns frame
// numbers into spawn commands and side signals, and the simulation applies
// them to the rocket and particle collections it owns.
package show

import (
	"log"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/types"
)

// Command is a spawn request produced by the director. Only the simulation
// applies commands.
type Command interface {
	command()
}

// LaunchCommand launches one rocket. Positions are viewport fractions.
type LaunchCommand struct {
	X        float64
	Target   float64
	Color    components.HSL
	Shell    types.ShellType
	Text     string
	AngleDeg float64
	Entry    string
}

// FountainCommand emits one fountain batch. Positions are viewport fractions.
type FountainCommand struct {
	X, Y  float64
	Color components.HSL
	Shell types.ShellType
	Count int
	Entry string
}

func (LaunchCommand) command()   {}
func (FountainCommand) command() {}

// Plan is everything the schedule asks for on one frame.
type Plan struct {
	Commands []Command
	Overlays []OverlayEvent
	Cues     []types.CueKind
}

// Empty reports whether nothing fires.
func (p Plan) Empty() bool {
	return len(p.Commands) == 0 && len(p.Overlays) == 0 && len(p.Cues) == 0
}

// Director evaluates the show script against the frame counter.
type Director struct {
	script  *config.ShowScript
	signals *Signals
}

// NewDirector creates a director. signals may be nil.
func NewDirector(script *config.ShowScript, signals *Signals) *Director {
	if signals == nil {
		signals = NewSignals()
	}
	return &Director{script: script, signals: signals}
}

// EndFrame returns the last scripted frame.
func (d *Director) EndFrame() int {
	return d.script.EndFrame
}

// Plan computes what fires on frame without side effects. Entries are
// visited in declaration order, which is also the order of the result.
func (d *Director) Plan(frame int) Plan {
	var plan Plan
	for i := range d.script.Entries {
		e := &d.script.Entries[i]
		shot, ok := e.Fires(frame)
		if !ok {
			continue
		}

		for _, r := range e.Rockets {
			at := r.AtShot(shot)
			color := d.script.Color(r.Color)
			if r.HueStep != 0 {
				color = color.WithHue(color.H + float64(shot)*r.HueStep)
			}
			plan.Commands = append(plan.Commands, LaunchCommand{
				X:        at.X,
				Target:   at.Target,
				Color:    color,
				Shell:    at.Shell,
				Text:     at.Text,
				AngleDeg: at.Angle,
				Entry:    e.Name,
			})
		}
		for _, f := range e.Fountains {
			plan.Commands = append(plan.Commands, FountainCommand{
				X:     f.X,
				Y:     f.Y,
				Color: d.script.Color(f.Color),
				Shell: f.Shell,
				Count: f.Count,
				Entry: e.Name,
			})
		}
		if o := e.Overlay; o != nil {
			action := OverlayShow
			if o.Action == "hide" {
				action = OverlayHide
			}
			plan.Overlays = append(plan.Overlays, OverlayEvent{Action: action, ID: o.ID, Text: o.Text, Frame: frame})
		}
		plan.Cues = append(plan.Cues, e.Cues...)
	}
	return plan
}

// Tick plans frame, delivers overlay and scheduled cue signals to their
// observers, and returns the spawn commands for the simulation to apply.
func (d *Director) Tick(frame int) []Command {
	plan := d.Plan(frame)
	for _, ev := range plan.Overlays {
		log.Printf("[ShowDirector] 帧 %d: 字幕 %s %s", frame, ev.ID, ev.Action)
		d.signals.emitOverlay(ev)
	}
	for _, cue := range plan.Cues {
		d.signals.emitCue(cue)
	}
	return plan.Commands
}
