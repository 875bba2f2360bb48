package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "witch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
turn_budget: 25ms
first_turn_budget: 1s
learn_turns: 2
min_learn_score: 3
seed: 42
metrics_addr: ":9108"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		TurnBudget:      25 * time.Millisecond,
		FirstTurnBudget: time.Second,
		LearnTurns:      2,
		MinLearnScore:   3,
		Seed:            42,
		MetricsAddr:     ":9108",
	}, cfg)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "learn_turns: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.LearnTurns)
	assert.Equal(t, DefaultConfig().TurnBudget, cfg.TurnBudget)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "turn_budget: 25ms\nseed: 42\n")
	t.Setenv("WITCH_TURN_BUDGET", "15ms")
	t.Setenv("WITCH_FIRST_TURN_BUDGET", "300ms")
	t.Setenv("WITCH_LEARN_TURNS", "6")
	t.Setenv("WITCH_SEED", "7")
	t.Setenv("WITCH_METRICS_ADDR", "127.0.0.1:9000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Millisecond, cfg.TurnBudget)
	assert.Equal(t, 300*time.Millisecond, cfg.FirstTurnBudget)
	assert.Equal(t, 6, cfg.LearnTurns)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "127.0.0.1:9000", cfg.MetricsAddr)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "turn_budget: [\n"))
		assert.ErrorContains(t, err, "parse ")
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("WITCH_LEARN_TURNS", "many")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "WITCH_LEARN_TURNS")
	})
	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "turn_budget: -1s\nlearn_turns: -2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
		assert.Contains(t, err.Error(), "turn_budget")
		assert.Contains(t, err.Error(), "learn_turns")
	})
}

func TestConfigBudget(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.FirstTurnBudget, cfg.budget(1))
	assert.Equal(t, cfg.TurnBudget, cfg.budget(2))
	assert.Equal(t, cfg.TurnBudget, cfg.budget(50))
}
