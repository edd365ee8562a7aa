package pop

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateCleared     GameStateType = "cleared"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Round   int
	Pops    int
	Score   int
	Best    int
	HasBest bool
	Cursor  Point
	Left    int
	Board   [][]int
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.gameOver && g.cleared:
		state = StateCleared
	case g.gameOver:
		state = StateGameOver
	}

	return Snapshot{
		Tick:    g.tick,
		Round:   g.round,
		Pops:    g.pops,
		Score:   g.score,
		Best:    g.best,
		HasBest: g.hasBest,
		Cursor:  Point{g.cursorX, g.cursorY},
		Left:    g.board.Count(),
		Board:   g.board.Rows(),
		State:   state,
	}
}
