package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/fireworks/pkg/components"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/show"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortShow() *config.ShowScript {
	return &config.ShowScript{
		Name:     "short",
		EndFrame: 10,
		Palette:  map[string]components.HSL{"gold": {H: 45, S: 100, L: 50}},
		Entries:  []config.ScheduleEntry{{Frame: 10, Overlay: &config.OverlaySpec{Action: "show", ID: "title"}}},
	}
}

func newHeadlessSim(t *testing.T) *show.Simulation {
	t.Helper()
	sim, err := show.New(show.Options{Width: 640, Height: 360, Script: shortShow(), Seed: 1})
	require.NoError(t, err)
	return sim
}

func TestSimulate_StopsWhenShowCompletes(t *testing.T) {
	tests := []struct {
		name       string
		statsEvery int
	}{
		{"no stats", 0},
		{"stats every 3 frames", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newHeadlessSim(t)
			var out bytes.Buffer

			require.NoError(t, simulate(context.Background(), sim, 0, tt.statsEvery, &out))
			assert.True(t, sim.Completed())
			assert.Equal(t, 10, sim.Frame(), "no frames past completion")
		})
	}
}

func TestSimulate_FixedFrameCount(t *testing.T) {
	sim := newHeadlessSim(t)
	var out bytes.Buffer

	require.NoError(t, simulate(context.Background(), sim, 25, 10, &out))
	assert.Equal(t, 25, sim.Frame())
	assert.Equal(t, 3, strings.Count(out.String(), "frame "), "stats at 10, 20 and 25")
}

const validShow = `
name: tiny
endFrame: 30
palette:
  gold: { h: 45, s: 100, l: 50 }
entries:
  - { name: one, frame: 5, rockets: [ { x: 0.5, target: 0.4, color: gold, shell: peony } ] }
`

const badShow = `
name: broken
endFrame: 30
palette:
  gold: { h: 45, s: 100, l: 50 }
entries:
  - { name: late, frame: 99, rockets: [ { x: 0.5, target: 0.4, color: gold, shell: peony } ] }
`

func TestValidate_EmbeddedGlob(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/a_show.yaml": {Data: []byte(validShow)},
		"data/b_show.yaml": {Data: []byte(badShow)},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	var out bytes.Buffer
	err := validate("data/*.yaml", config.DefaultShellCatalog(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out.String(), "✓ data/a_show.yaml")
	assert.Contains(t, out.String(), "✗ data/b_show.yaml")
}

func TestValidate_SingleEmbeddedFile(t *testing.T) {
	embedded.Init(fstest.MapFS{"data/show.yaml": {Data: []byte(validShow)}})
	t.Cleanup(func() { embedded.Init(nil) })

	var out bytes.Buffer
	require.NoError(t, validate("data/show.yaml", config.DefaultShellCatalog(), &out))
	assert.Contains(t, out.String(), `show "tiny"`)
}
