// Package config provides YAML-based configuration loading for the pop
// engine and the host shell.
package config

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/haptic"
)

// Limits for board settings. Values outside are reset to defaults by Validate.
const (
	MinColumns = 4
	MaxColumns = 30
	MinRows    = 4
	MaxRows    = 16
	MinColors  = 2
	MaxColors  = 6
)

// PopConfig contains all configuration for Bubble Pop.
type PopConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Scoring ScoringConfig `yaml:"scoring"`
	Host    HostConfig    `yaml:"host"`
}

// BoardConfig defines the board shape and generation parameters.
type BoardConfig struct {
	Columns  int `yaml:"columns"`
	Rows     int `yaml:"rows"`
	Colors   int `yaml:"colors"`
	MinGroup int `yaml:"min_group"`
}

// ScoringConfig defines scoring parameters.
type ScoringConfig struct {
	ClearBonus int `yaml:"clear_bonus"`
}

// HostConfig defines how the host shell reacts to engine notifications.
type HostConfig struct {
	Haptic     haptic.Mode `yaml:"haptic"`
	PulseMS    int         `yaml:"pulse_ms"`
	StorageKey string      `yaml:"storage_key"`
}

// Pulse returns the haptic pulse duration.
func (h HostConfig) Pulse() time.Duration {
	return time.Duration(h.PulseMS) * time.Millisecond
}

// Validate resets out-of-range values to their defaults and returns the
// names of the fields it changed.
func (c *PopConfig) Validate() []string {
	def := DefaultPopConfig()
	var fixed []string

	if c.Board.Columns < MinColumns || c.Board.Columns > MaxColumns {
		c.Board.Columns = def.Board.Columns
		fixed = append(fixed, "board.columns")
	}
	if c.Board.Rows < MinRows || c.Board.Rows > MaxRows {
		c.Board.Rows = def.Board.Rows
		fixed = append(fixed, "board.rows")
	}
	if c.Board.Colors < MinColors || c.Board.Colors > MaxColors {
		c.Board.Colors = def.Board.Colors
		fixed = append(fixed, "board.colors")
	}
	if c.Board.MinGroup < 2 {
		c.Board.MinGroup = def.Board.MinGroup
		fixed = append(fixed, "board.min_group")
	}
	if c.Scoring.ClearBonus < 0 {
		c.Scoring.ClearBonus = def.Scoring.ClearBonus
		fixed = append(fixed, "scoring.clear_bonus")
	}

	switch c.Host.Haptic {
	case haptic.ModeBell, haptic.ModeFlash, haptic.ModeOff:
	default:
		c.Host.Haptic = def.Host.Haptic
		fixed = append(fixed, "host.haptic")
	}
	if c.Host.PulseMS <= 0 {
		c.Host.PulseMS = def.Host.PulseMS
		fixed = append(fixed, "host.pulse_ms")
	}
	if c.Host.StorageKey == "" {
		c.Host.StorageKey = def.Host.StorageKey
		fixed = append(fixed, "host.storage_key")
	}

	return fixed
}
