// Package pop implements Bubble Pop, a SameGame-style puzzle: pop groups of
// same-colored bubbles, let the rest fall, and empty the board for a bonus.
package pop

import (
	"math/rand"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/engine"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// ID is the engine identifier used for registration and score history.
const ID = "pop"

// Game implements engine.Engine for Bubble Pop.
type Game struct {
	cfg    config.PopConfig
	rng    *rand.Rand
	events core.Emitter

	tick  uint64
	round int
	pops  int

	board   Board
	cursorX int
	cursorY int

	score    int
	best     int
	hasBest  bool
	lastPop  int // bubbles in the last popped group
	lastGain int // points scored by the last pop

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	initDone bool
	cleared  bool
	gameOver bool
	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets a custom config file path for the next Init.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a game that loads its configuration on Init.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.PopConfig) *Game {
	cfg.Validate()
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, func() engine.Engine {
		return New()
	})
}

// ID returns the engine identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubble Pop"
}

// Init receives the host's flags and starts the first round.
func (g *Game) Init(flags engine.InitFlags, cfg core.RuntimeConfig) {
	if g.cfg == (config.PopConfig{}) {
		loaded, err := config.LoadPop(configPath)
		if err != nil {
			loaded = config.DefaultPopConfig()
		}
		g.cfg = loaded
	}

	g.best, g.hasBest = flags.HighScore()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.initDone = true

	g.newRound()
}

// newRound deals a fresh board. The best score carries over.
func (g *Game) newRound() {
	g.round++
	g.board = NewBoard(g.cfg.Board.Columns, g.cfg.Board.Rows)
	g.board.Fill(g.rng, g.cfg.Board.Colors)

	// Re-deal until at least one move exists
	for attempts := 0; !g.board.HasMoves(g.cfg.Board.MinGroup) && attempts < 100; attempts++ {
		g.board.Fill(g.rng, g.cfg.Board.Colors)
	}

	g.cursorX = 0
	g.cursorY = g.board.H - 1
	g.score = 0
	g.lastPop = 0
	g.lastGain = 0
	g.cleared = false
	g.gameOver = false
	g.paused = false
	g.checkScreenSize()
}

// Resize adapts the game to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// minScreenSize is the board box plus two HUD lines.
func (g *Game) minScreenSize() (int, int) {
	return g.cfg.Board.Columns*cellWidth + 3, g.cfg.Board.Rows + 4
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.initDone {
		return core.StepResult{}
	}
	g.tick++

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.newRound()
		}
		return g.result()
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionPop) {
		g.popAtCursor()
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events.Drain()}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursorX = core.Clamp(g.cursorX+dx, 0, g.board.W-1)
	g.cursorY = core.Clamp(g.cursorY+dy, 0, g.board.H-1)
}

// popAtCursor pops the group under the cursor if it is large enough.
func (g *Game) popAtCursor() {
	group := g.board.Group(g.cursorX, g.cursorY)
	if len(group) < g.cfg.Board.MinGroup {
		return
	}

	g.board.Remove(group)
	g.board.Settle()
	g.pops++

	g.lastPop = len(group)
	g.lastGain = GroupScore(len(group))
	g.score += g.lastGain
	g.events.Emit(core.HapticRequested{})

	if g.board.IsEmpty() {
		g.cleared = true
		g.score += g.cfg.Scoring.ClearBonus
		g.lastGain += g.cfg.Scoring.ClearBonus
	}

	g.reportBest()

	if !g.board.HasMoves(g.cfg.Board.MinGroup) {
		g.gameOver = true
	}

	g.snapCursor()
}

// reportBest emits a high score whenever the running score beats the best
// score known to the engine.
func (g *Game) reportBest() {
	if g.score <= 0 {
		return
	}
	if g.hasBest && g.score <= g.best {
		return
	}
	g.best = g.score
	g.hasBest = true
	g.events.Emit(core.HighScoreReported{Score: g.score})
}

// snapCursor keeps the cursor on a bubble after the board settles.
func (g *Game) snapCursor() {
	if g.board.At(g.cursorX, g.cursorY) != Empty {
		return
	}
	// Columns close leftwards, so walk left first, then drop to the stack top.
	for g.cursorX > 0 && g.board.At(g.cursorX, g.board.H-1) == Empty {
		g.cursorX--
	}
	for g.cursorY < g.board.H-1 && g.board.At(g.cursorX, g.cursorY) == Empty {
		g.cursorY++
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Best returns the best score the engine knows about.
func (g *Game) Best() (int, bool) {
	return g.best, g.hasBest
}
