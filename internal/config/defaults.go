package config

import (
	_ "embed"

	"github.com/vovakirdan/bubblepop/internal/haptic"
)

//go:embed defaults/pop.yaml
var defaultPopYAML []byte

// DefaultPopConfig returns the default Bubble Pop configuration.
func DefaultPopConfig() PopConfig {
	return PopConfig{
		Board: BoardConfig{
			Columns:  12,
			Rows:     8,
			Colors:   4,
			MinGroup: 2,
		},
		Scoring: ScoringConfig{
			ClearBonus: 1000,
		},
		Host: HostConfig{
			Haptic:     haptic.ModeFlash,
			PulseMS:    40,
			StorageKey: "highScore",
		},
	}
}
