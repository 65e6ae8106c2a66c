package show

import (
	"context"
	"errors"
	"time"
)

// Loop drives a simulation from a tick source, one Step per tick.
type Loop struct {
	Sim *Simulation
	// StopOnComplete ends Run once the show has finished.
	StopOnComplete bool
}

// NewLoop creates a loop for sim.
func NewLoop(sim *Simulation) *Loop {
	return &Loop{Sim: sim, StopOnComplete: true}
}

// Run steps the simulation on every tick until ctx is cancelled, the
// simulation is stopped, a frame fails, or (with StopOnComplete) the show
// ends. Cancellation and Stop return nil; a failed frame returns its error.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			l.Sim.Stop()
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if err := l.Sim.Step(); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
			if l.StopOnComplete && l.Sim.Completed() {
				return nil
			}
		}
	}
}

// RunFrames steps the simulation n times without pacing, returning early
// on cancellation, Stop, or a frame error.
func RunFrames(ctx context.Context, sim *Simulation, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sim.Step(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
	return nil
}

// RunUntilComplete steps the simulation until the show completes, at most
// limit frames, returning early like RunFrames.
func RunUntilComplete(ctx context.Context, sim *Simulation, limit int) error {
	for i := 0; i < limit && !sim.Completed(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sim.Step(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
	return nil
}

// FrameInterval is the nominal frame period the physics constants are tuned for.
const FrameInterval = time.Second / 60
