package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.ThreadsPerGame)
	assert.Equal(t, int64(444), cfg.Timeout)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, 8005, cfg.Port)
	assert.Equal(t, "bamboozle snake", cfg.Name)

	assert.Equal(t, DefaultDuelsWeights(), cfg.Duels)
	assert.Equal(t, DefaultRoyaleWeights(), cfg.Royale)
	assert.Equal(t, DefaultStandardWeights(), cfg.Standard)
	assert.Equal(t, DefaultConstrictorWeights(), cfg.Constrictor)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BAMBOOZLE_TIMEOUT", "300")
	t.Setenv("BAMBOOZLE_THREADS_PER_GAME", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(300), cfg.Timeout)
	assert.Equal(t, 8, cfg.ThreadsPerGame)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("BAMBOOZLE_THREADS_PER_GAME", "0")

	_, err := LoadConfig()
	assert.Error(t, err, "zero workers cannot search")
}

func TestConfigDumpYAMLRoundtrip(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	dump, err := cfg.DumpYAML()
	require.NoError(t, err)
	assert.Contains(t, dump, "threads_per_game: 4")

	var parsed Config
	require.NoError(t, yaml.Unmarshal([]byte(dump), &parsed))
	assert.Equal(t, cfg.Timeout, parsed.Timeout)
	assert.Equal(t, cfg.Standard, parsed.Standard)
}

func TestDefaultWeights(t *testing.T) {
	// the tuned numbers are part of the external contract
	duels := DefaultDuelsWeights()
	assert.Equal(t, 1.0, duels.Area)
	assert.Equal(t, 0.1, duels.SnakeArea)
	assert.Equal(t, 0.05, duels.Health)
	assert.Zero(t, duels.Length)
	assert.Zero(t, duels.Food)

	royale := DefaultRoyaleWeights()
	assert.Equal(t, 3.5, royale.Area)
	assert.Equal(t, 2.0, royale.Health)
	assert.Equal(t, 4.0, royale.AliveEnemies)

	standard := DefaultStandardWeights()
	assert.Equal(t, 3.0, standard.Area)
	assert.Equal(t, 1.5, standard.Length)
	assert.Equal(t, 0.25, standard.Central)

	constrictor := DefaultConstrictorWeights()
	assert.Equal(t, 0.01, constrictor.Area)
	assert.Equal(t, 0.1, constrictor.AliveEnemies)
}
