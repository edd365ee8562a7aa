// Package engine defines the contract between a game engine and the host
// shell that runs it. Engines are opaque to the host: they receive their
// start-up flags once and talk back only through events returned from Step.
package engine

import "github.com/vovakirdan/bubblepop/internal/core"

// Engine is the interface every game engine must implement.
// Engines contain pure logic with no terminal or storage dependencies.
type Engine interface {
	// ID returns a unique identifier for this engine (e.g., "pop").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Init hands the engine its start-up flags and runtime configuration.
	// The host calls it exactly once per engine instance.
	Init(flags InitFlags, cfg core.RuntimeConfig)

	// Step advances the simulation by one tick. Notifications raised during
	// the tick are returned in StepResult.Events.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the surface.
	// The surface is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// InitFlags is the one-shot start-up configuration passed from the host to
// the engine. It is immutable once built.
type InitFlags struct {
	highScore    int
	hasHighScore bool
}

// NewInitFlags builds flags carrying a prior high score.
func NewInitFlags(highScore int) InitFlags {
	return InitFlags{highScore: highScore, hasHighScore: true}
}

// HighScore returns the prior high score and whether one was present.
// An absent score is distinct from zero.
func (f InitFlags) HighScore() (int, bool) {
	return f.highScore, f.hasHighScore
}
