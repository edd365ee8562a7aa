package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bubblepop/internal/haptic"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PopConfig
	require.NoError(t, yaml.Unmarshal(defaultPopYAML, &cfg))
	assert.Equal(t, DefaultPopConfig(), cfg)
}

func TestLoadPopCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.yaml")
	data := []byte("board:\n  colors: 6\nhost:\n  haptic: bell\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadPop(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Board.Colors)
	assert.Equal(t, haptic.ModeBell, cfg.Host.Haptic)
	assert.Equal(t, 12, cfg.Board.Columns, "unset fields keep defaults")
	assert.Equal(t, "highScore", cfg.Host.StorageKey)
}

func TestLoadPopCustomPathErrors(t *testing.T) {
	_, err := LoadPop(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [oops"), 0o600))
	_, err = LoadPop(bad)
	assert.Error(t, err)
}

func TestValidateResetsOutOfRange(t *testing.T) {
	cfg := PopConfig{
		Board:   BoardConfig{Columns: 2, Rows: 99, Colors: 9, MinGroup: 1},
		Scoring: ScoringConfig{ClearBonus: -1},
		Host:    HostConfig{Haptic: "rumble", PulseMS: 0},
	}

	fixed := cfg.Validate()

	assert.Equal(t, DefaultPopConfig(), cfg)
	assert.ElementsMatch(t, []string{
		"board.columns", "board.rows", "board.colors", "board.min_group",
		"scoring.clear_bonus", "host.haptic", "host.pulse_ms", "host.storage_key",
	}, fixed)
}

func TestValidateKeepsGoodConfig(t *testing.T) {
	cfg := DefaultPopConfig()
	assert.Empty(t, cfg.Validate())
}

func TestHostPulse(t *testing.T) {
	assert.Equal(t, 40*time.Millisecond, DefaultPopConfig().Host.Pulse())
}
