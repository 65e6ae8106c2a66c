package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The shipped data files and the built-in defaults must describe the same show.

func TestShippedShellCatalogMatchesDefault(t *testing.T) {
	loaded, err := LoadShellCatalog("../../data/shells.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultShellCatalog(), loaded)
}

func TestShippedPhysicsMatchesDefault(t *testing.T) {
	loaded, err := LoadPhysicsConfig("../../data/physics.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultPhysicsConfig(), loaded)
}

func TestShippedShowScriptMatchesDefault(t *testing.T) {
	loaded, err := LoadShowScript("../../data/show.yaml", DefaultShellCatalog())
	require.NoError(t, err)
	assert.Equal(t, DefaultShowScript(), loaded)
}
