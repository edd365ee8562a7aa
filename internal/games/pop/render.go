package pop

import (
	"fmt"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// cellWidth is the number of screen columns one bubble occupies.
const cellWidth = 2

const (
	runeBubble = '●'
	runeGroup  = '◉'
)

// Render draws the HUD and the board.
func (g *Game) Render(dst *core.Screen) {
	if !g.initDone {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Terminal too small")
	dst.DrawTextCentered(mid, fmt.Sprintf("need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
}

func (g *Game) renderHUD(dst *core.Screen) {
	best := "-"
	if g.hasBest {
		best = fmt.Sprintf("%d", g.best)
	}
	dst.DrawTextColored(1, 0, "BUBBLE POP", core.ColorCyan)
	dst.DrawText(13, 0, fmt.Sprintf("Score: %d   Best: %s   Left: %d", g.score, best, g.board.Count()))

	var status string
	color := core.ColorDefault
	switch {
	case g.paused:
		status = "PAUSED - press P to resume"
		color = core.ColorYellow
	case g.gameOver && g.cleared:
		status = fmt.Sprintf("Board cleared! +%d bonus. Press R for a new round", g.cfg.Scoring.ClearBonus)
		color = core.ColorGreen
	case g.gameOver:
		status = "No more moves. Press R for a new round"
		color = core.ColorRed
	default:
		group := g.board.Group(g.cursorX, g.cursorY)
		if len(group) >= g.cfg.Board.MinGroup {
			status = fmt.Sprintf("Group: %d (+%d)", len(group), GroupScore(len(group)))
		} else if g.lastPop > 0 {
			status = fmt.Sprintf("Popped %d (+%d)", g.lastPop, g.lastGain)
			color = core.ColorGray
		}
	}
	dst.DrawTextColored(1, 1, status, color)
}

func (g *Game) renderBoard(dst *core.Screen) {
	boxW := g.board.W*cellWidth + 3
	boxH := g.board.H + 2
	ox := (dst.Width() - boxW) / 2
	oy := 2
	dst.DrawBox(core.NewRect(ox, oy, boxW, boxH))

	inGroup := make(map[Point]bool)
	if !g.gameOver && !g.paused {
		group := g.board.Group(g.cursorX, g.cursorY)
		if len(group) >= g.cfg.Board.MinGroup {
			for _, p := range group {
				inGroup[p] = true
			}
		}
	}

	for y := range g.board.H {
		for x := range g.board.W {
			c := g.board.At(x, y)
			if c == Empty {
				continue
			}
			r := runeBubble
			if inGroup[Point{x, y}] {
				r = runeGroup
			}
			dst.SetColored(ox+2+x*cellWidth, oy+1+y, r, bubbleColor(c))
		}
	}

	if !g.gameOver {
		cx := ox + 2 + g.cursorX*cellWidth
		cy := oy + 1 + g.cursorY
		dst.SetColored(cx-1, cy, '[', core.ColorWhite)
		dst.SetColored(cx+1, cy, ']', core.ColorWhite)
	}
}

// bubbleColor maps a color index (1-based) to a screen color.
func bubbleColor(c int) core.Color {
	if c < 1 || c > len(core.BubbleColors) {
		return core.ColorGray
	}
	return core.BubbleColors[c-1]
}
