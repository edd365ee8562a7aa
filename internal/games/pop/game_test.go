package pop

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/engine"
)

func testConfig() config.PopConfig {
	cfg := config.DefaultPopConfig()
	cfg.Board.Columns = 4
	cfg.Board.Rows = 4
	cfg.Scoring.ClearBonus = 100
	return cfg
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 12345}
}

// newTestGame starts a game and replaces its board with rows.
func newTestGame(t *testing.T, flags engine.InitFlags, rows [][]int) *Game {
	t.Helper()
	g := NewWithConfig(testConfig())
	g.Init(flags, testRuntime())
	if rows != nil {
		g.board = BoardFromRows(rows)
		g.cursorX, g.cursorY = 0, g.board.H-1
	}
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func countEvents(events []core.Event) (haptics int, scores []int) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case core.HapticRequested:
			haptics++
		case core.HighScoreReported:
			scores = append(scores, ev.Score)
		}
	}
	return haptics, scores
}

func TestPopEmitsHapticAndFirstHighScore(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 2, 2},
		{1, 1, 1, 3},
	})

	result := g.Step(input(core.ActionPop))

	haptics, scores := countEvents(result.Events)
	if haptics != 1 {
		t.Errorf("haptic events = %d, want 1", haptics)
	}
	if !reflect.DeepEqual(scores, []int{4}) {
		t.Errorf("high score events = %v, want [4]", scores)
	}
	if result.State.Score != 4 {
		t.Errorf("score = %d, want 4", result.State.Score)
	}
}

func TestPopBelowKnownBestDoesNotReport(t *testing.T) {
	g := newTestGame(t, engine.NewInitFlags(50), [][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{1, 1, 2, 3},
	})

	result := g.Step(input(core.ActionPop))

	haptics, scores := countEvents(result.Events)
	if haptics != 1 {
		t.Errorf("haptic events = %d, want 1", haptics)
	}
	if len(scores) != 0 {
		t.Errorf("high score events = %v, want none", scores)
	}
	if best, ok := g.Best(); !ok || best != 50 {
		t.Errorf("Best() = (%d, %v), want (50, true)", best, ok)
	}
}

func TestSingleBubbleDoesNotPop(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{1, 1, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{2, 1, 2, 3},
	})

	result := g.Step(input(core.ActionPop))

	if len(result.Events) != 0 {
		t.Errorf("events = %v, want none", result.Events)
	}
	if g.board.Count() != 16 {
		t.Errorf("board changed after popping a lone bubble")
	}
}

func TestClearingBoardAddsBonusAndEndsRound(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 2, 2, 0},
	})

	result := g.Step(input(core.ActionPop))

	if !result.State.GameOver {
		t.Fatal("round should end when the board is cleared")
	}
	if want := GroupScore(3) + 100; result.State.Score != want {
		t.Errorf("score = %d, want %d", result.State.Score, want)
	}
	_, scores := countEvents(result.Events)
	if !reflect.DeepEqual(scores, []int{104}) {
		t.Errorf("high score events = %v, want [104]", scores)
	}
	if g.Snapshot().State != StateCleared {
		t.Errorf("snapshot state = %q, want %q", g.Snapshot().State, StateCleared)
	}
}

func TestNoMovesEndsRound(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{3, 0, 0, 0},
		{1, 1, 2, 0},
	})

	result := g.Step(input(core.ActionPop))

	if !result.State.GameOver {
		t.Fatal("round should end when no group can be popped")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %q, want %q", g.Snapshot().State, StateGameOver)
	}
}

func TestRestartKeepsBestAndReportsOnlyNewRecords(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{3, 0, 0, 0},
		{1, 1, 2, 0},
	})
	g.Step(input(core.ActionPop))
	if best, _ := g.Best(); best != 1 {
		t.Fatalf("best after first round = %d, want 1", best)
	}

	// Input other than restart is ignored after game over
	if r := g.Step(input(core.ActionPop)); len(r.Events) != 0 || !r.State.GameOver {
		t.Fatal("game over state should ignore pops")
	}

	result := g.Step(input(core.ActionRestart))
	if result.State.GameOver || result.State.Score != 0 {
		t.Fatalf("restart should begin a fresh round, got %+v", result.State)
	}
	if g.Snapshot().Round != 2 {
		t.Errorf("round = %d, want 2", g.Snapshot().Round)
	}
	if best, ok := g.Best(); !ok || best != 1 {
		t.Errorf("best should carry over, got (%d, %v)", best, ok)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{1, 1, 2, 3},
	})

	if r := g.Step(input(core.ActionPause)); !r.State.Paused {
		t.Fatal("pause should toggle on")
	}
	if r := g.Step(input(core.ActionPop)); len(r.Events) != 0 {
		t.Error("pops should be ignored while paused")
	}
	if r := g.Step(input(core.ActionPause)); r.State.Paused {
		t.Fatal("pause should toggle off")
	}
	if r := g.Step(input(core.ActionPop)); len(r.Events) == 0 {
		t.Error("pop after unpausing should emit events")
	}
}

func TestCursorMovementIsClamped(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, nil)

	for range 10 {
		g.Step(input(core.ActionLeft))
		g.Step(input(core.ActionDown))
	}
	if c := g.Snapshot().Cursor; c != (Point{0, 3}) {
		t.Errorf("cursor = %v, want {0 3}", c)
	}

	for range 10 {
		g.Step(input(core.ActionRight))
		g.Step(input(core.ActionUp))
	}
	if c := g.Snapshot().Cursor; c != (Point{3, 0}) {
		t.Errorf("cursor = %v, want {3 0}", c)
	}
}

func TestCursorSnapsToRemainingBubble(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 2, 3, 3},
		{1, 2, 2, 4},
	})
	g.cursorX, g.cursorY = 3, 2

	g.Step(input(core.ActionPop))

	c := g.Snapshot().Cursor
	if g.board.At(c.X, c.Y) == Empty {
		t.Errorf("cursor %v rests on an empty cell", c)
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	play := func() []Snapshot {
		g := NewWithConfig(testConfig())
		g.Init(engine.InitFlags{}, testRuntime())
		var snaps []Snapshot
		moves := []core.Action{core.ActionPop, core.ActionRight, core.ActionPop, core.ActionUp, core.ActionPop}
		for _, a := range moves {
			g.Step(input(a))
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Error("games with the same seed diverged")
	}
}

func TestNewRoundAlwaysHasMoves(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewWithConfig(testConfig())
		rt := testRuntime()
		rt.Seed = seed
		g.Init(engine.InitFlags{}, rt)

		if !g.board.HasMoves(g.cfg.Board.MinGroup) {
			t.Errorf("seed %d dealt a board without moves", seed)
		}
	}
}

func TestTooSmallScreenPauses(t *testing.T) {
	g := NewWithConfig(testConfig())
	g.Init(engine.InitFlags{}, core.RuntimeConfig{ScreenW: 5, ScreenH: 5, Seed: 1})

	if !g.State().Paused {
		t.Fatal("tiny screen should pause the game")
	}

	screen := core.NewScreen(5, 5)
	g.Render(screen)

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resizing to a large screen should unpause")
	}
}

func TestStepBeforeInit(t *testing.T) {
	g := New()
	if r := g.Step(input(core.ActionPop)); len(r.Events) != 0 {
		t.Error("uninitialized engine should not emit events")
	}
}

func TestRenderShowsHUDAndBoard(t *testing.T) {
	g := newTestGame(t, engine.NewInitFlags(77), [][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{1, 1, 2, 3},
	})
	screen := core.NewScreen(40, 12)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"BUBBLE POP", "Score: 0", "Best: 77", "Group: 2 (+1)", "[◉]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWithoutBest(t *testing.T) {
	g := newTestGame(t, engine.InitFlags{}, nil)
	screen := core.NewScreen(40, 12)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Best: -") {
		t.Errorf("absent best should render as '-', got %q", screen.Row(0))
	}
}
