// Package main runs a fireworks show without any display, for profiling
// the simulation and checking show scripts.
//
// Usage:
//
//	go run ./cmd/fireworks-headless [flags]
//
// Flags:
//
//	--frames <n>       Frames to simulate (default: until the show completes)
//	--seed <n>         Random seed (default 1)
//	--stats <n>        Print a stats line every n frames (0 = only at the end)
//	--validate <path>  Validate a yaml file, or every match of a data/ glob
//	                   such as "data/*.yaml", and exit
//	--width/--height   Viewport size in pixels
//	--root <dir>       Directory holding data/ (default ".")
//	--verbose          Enable verbose logging
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/show"
	"github.com/gonewx/fireworks/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	framesFlag   = flag.Int("frames", 0, "Frames to simulate (0 = until the show completes)")
	seedFlag     = flag.Int64("seed", 1, "Random seed")
	statsFlag    = flag.Int("stats", 0, "Print stats every n frames (0 = only at the end)")
	validateFlag = flag.String("validate", "", "Validate a yaml file or data/ glob and exit")
	widthFlag    = flag.Int("width", config.DefaultWindowWidth, "Viewport width")
	heightFlag   = flag.Int("height", config.DefaultWindowHeight, "Viewport height")
	shellsFlag   = flag.String("shells", "data/shells.yaml", "Shell catalog file")
	physicsFlag  = flag.String("physics", "data/physics.yaml", "Physics config file")
	scriptFlag   = flag.String("script", "data/show.yaml", "Show script file")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
	rootFlag     = flag.String("root", ".", "Directory holding data/")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(os.DirFS(*rootFlag))

	catalog, err := config.LoadShellCatalog(*shellsFlag)
	if err != nil {
		return err
	}

	if *validateFlag != "" {
		return validate(*validateFlag, catalog, os.Stdout)
	}

	physics, err := config.LoadPhysicsConfig(*physicsFlag)
	if err != nil {
		return err
	}
	script, err := config.LoadShowScript(*scriptFlag, catalog)
	if err != nil {
		return err
	}

	sim, err := show.New(show.Options{
		Width:   float64(*widthFlag),
		Height:  float64(*heightFlag),
		Catalog: catalog,
		Physics: physics,
		Script:  script,
		Seed:    *seedFlag,
	})
	if err != nil {
		return err
	}

	cues := map[types.CueKind]int{}
	sim.Signals().OnCue(func(k types.CueKind) error {
		cues[k]++
		return nil
	})
	sim.Signals().OnOverlay(func(ev show.OverlayEvent) {
		log.Printf("[Headless] frame %d: overlay %s %s %q", sim.Frame(), ev.Action, ev.ID, ev.Text)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	started := time.Now()
	if err := simulate(ctx, sim, *framesFlag, *statsFlag, os.Stdout); err != nil {
		return err
	}
	elapsed := time.Since(started)

	st := sim.Stats()
	fmt.Println("=== Show Summary ===")
	fmt.Printf("Show:        %q\n", script.Name)
	fmt.Printf("Frames:      %d (completed: %v)\n", st.Frame, sim.Completed())
	fmt.Printf("Rockets:     %d launched, %d exploded\n", st.RocketsLaunched, st.RocketsExploded)
	fmt.Printf("Particles:   %d explosion, %d trail, %d fountain (peak %d live)\n",
		st.ExplosionParticles, st.TrailParticles, st.FountainParticles, st.PeakParticles)
	fmt.Printf("Cues:        %d launch, %d explosion\n", cues[types.CueLaunch], cues[types.CueExplosion])
	if st.Frame > 0 {
		fmt.Printf("Time:        %v (%.1f µs/frame)\n", elapsed.Round(time.Millisecond),
			float64(elapsed.Microseconds())/float64(st.Frame))
	}
	printLaunches(st)
	return nil
}

// validate checks every file the pattern matches in data/, or the single
// file at path. The loader is picked from the file's top-level keys.
func validate(pattern string, catalog *config.ShellCatalog, w io.Writer) error {
	paths, err := embedded.Glob(pattern)
	if err != nil || len(paths) == 0 {
		paths = []string{pattern}
	}
	sort.Strings(paths)

	failed := 0
	for _, path := range paths {
		summary, err := validateFile(path, catalog)
		if err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", path, summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(paths))
	}
	return nil
}

func validateFile(path string, catalog *config.ShellCatalog) (string, error) {
	data, err := readData(path)
	if err != nil {
		return "", err
	}
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	switch {
	case hasKey(keys, "shells"):
		c, err := config.ParseShellCatalog(data)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("shell catalog, %d shells", len(c.Shells)), nil
	case hasKey(keys, "entries"):
		script, err := config.ParseShowScript(data, catalog)
		if err != nil {
			return "", err
		}
		rockets := 0
		for i := range script.Entries {
			rockets += len(script.Entries[i].Rockets) * script.Entries[i].Shots()
		}
		return fmt.Sprintf("show %q, %d entries, %d rockets, ends at frame %d",
			script.Name, len(script.Entries), rockets, script.EndFrame), nil
	default:
		if _, err := config.ParsePhysicsConfig(data); err != nil {
			return "", err
		}
		return "physics config", nil
	}
}

func readData(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

func hasKey(keys map[string]yaml.Node, k string) bool {
	_, ok := keys[k]
	return ok
}

// simulate steps the show, printing a stats line every statsEvery frames.
// With frames <= 0 it runs until the show completes, capped at four times
// the script length.
func simulate(ctx context.Context, sim *show.Simulation, frames, statsEvery int, w io.Writer) error {
	untilComplete := frames <= 0
	if untilComplete {
		// 给最后一批粒子留足熄灭时间
		frames = sim.EndFrame() * 4
	}

	for sim.Frame() < frames && !sim.Stopped() {
		chunk := frames - sim.Frame()
		if statsEvery > 0 && chunk > statsEvery {
			chunk = statsEvery
		}
		var err error
		if untilComplete {
			err = show.RunUntilComplete(ctx, sim, chunk)
		} else {
			err = show.RunFrames(ctx, sim, chunk)
		}
		if err != nil {
			return err
		}
		if statsEvery > 0 {
			printStats(w, sim.Stats())
		}
		if untilComplete && sim.Completed() {
			break
		}
	}
	return nil
}

func printStats(w io.Writer, st show.Stats) {
	fmt.Fprintf(w, "frame %6d  rockets %3d  particles %5d  peak %5d\n",
		st.Frame, st.LiveRockets, st.LiveParticles, st.PeakParticles)
}

func printLaunches(st show.Stats) {
	frames := make([]int, 0, len(st.LaunchesByFrame))
	for f := range st.LaunchesByFrame {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	for _, f := range frames {
		fmt.Printf("  launch @%-5d %2d rockets, %2d exploded\n", f, st.LaunchesByFrame[f], st.ExplodedByLaunchFrame[f])
	}
}
