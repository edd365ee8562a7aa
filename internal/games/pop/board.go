package pop

import "math/rand"

// Empty marks a cell with no bubble. Bubble colors are 1..N.
const Empty = 0

// Point is a board position. Y grows downwards; bubbles fall towards
// larger Y and columns close towards X = 0.
type Point struct {
	X, Y int
}

// Board is a grid of bubbles stored row-major.
type Board struct {
	W, H  int
	cells []int
}

// NewBoard creates an empty board.
func NewBoard(w, h int) Board {
	return Board{W: w, H: h, cells: make([]int, w*h)}
}

// BoardFromRows builds a board from rows of color indexes (top row first).
// All rows must have the same length.
func BoardFromRows(rows [][]int) Board {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	b := NewBoard(w, h)
	for y, row := range rows {
		for x, c := range row {
			b.Set(x, y, c)
		}
	}
	return b
}

// Rows returns the board as rows of color indexes (top row first).
func (b Board) Rows() [][]int {
	rows := make([][]int, b.H)
	for y := range b.H {
		rows[y] = append([]int(nil), b.cells[y*b.W:(y+1)*b.W]...)
	}
	return rows
}

// InBounds reports whether (x, y) is on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the color at (x, y), or Empty when out of bounds.
func (b Board) At(x, y int) int {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y*b.W+x]
}

// Set places color c at (x, y). Out-of-bounds writes are ignored.
func (b Board) Set(x, y, c int) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.W+x] = c
}

// Fill covers the board with random colors in [1, colors].
func (b Board) Fill(rng *rand.Rand, colors int) {
	for i := range b.cells {
		b.cells[i] = rng.Intn(colors) + 1
	}
}

// Count returns the number of bubbles left.
func (b Board) Count() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every bubble has been popped.
func (b Board) IsEmpty() bool {
	return b.Count() == 0
}

// Group returns the 4-connected same-colored group containing (x, y).
// Returns nil for an empty or out-of-bounds cell.
func (b Board) Group(x, y int) []Point {
	color := b.At(x, y)
	if color == Empty {
		return nil
	}

	seen := make([]bool, len(b.cells))
	stack := []Point{{x, y}}
	seen[y*b.W+x] = true
	var group []Point

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, p)

		for _, d := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !b.InBounds(nx, ny) || seen[ny*b.W+nx] || b.At(nx, ny) != color {
				continue
			}
			seen[ny*b.W+nx] = true
			stack = append(stack, Point{nx, ny})
		}
	}
	return group
}

// Remove clears every point in the group.
func (b Board) Remove(group []Point) {
	for _, p := range group {
		b.Set(p.X, p.Y, Empty)
	}
}

// Settle drops bubbles to the bottom of their column, then closes empty
// columns towards the left.
func (b Board) Settle() {
	for x := range b.W {
		write := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			c := b.At(x, y)
			if c == Empty {
				continue
			}
			b.Set(x, y, Empty)
			b.Set(x, write, c)
			write--
		}
	}

	write := 0
	for x := range b.W {
		if b.At(x, b.H-1) == Empty {
			continue
		}
		if write != x {
			for y := range b.H {
				b.Set(write, y, b.At(x, y))
				b.Set(x, y, Empty)
			}
		}
		write++
	}
}

// HasMoves reports whether any group of at least minGroup bubbles exists.
func (b Board) HasMoves(minGroup int) bool {
	if minGroup <= 1 {
		return !b.IsEmpty()
	}
	// Two adjacent equal bubbles are enough for the usual minGroup of 2;
	// larger minimums need a flood fill.
	if minGroup == 2 {
		for y := range b.H {
			for x := range b.W {
				c := b.At(x, y)
				if c == Empty {
					continue
				}
				if b.At(x+1, y) == c || b.At(x, y+1) == c {
					return true
				}
			}
		}
		return false
	}

	seen := make([]bool, len(b.cells))
	for y := range b.H {
		for x := range b.W {
			if seen[y*b.W+x] || b.At(x, y) == Empty {
				continue
			}
			group := b.Group(x, y)
			for _, p := range group {
				seen[p.Y*b.W+p.X] = true
			}
			if len(group) >= minGroup {
				return true
			}
		}
	}
	return false
}

// GroupScore is the score for popping a group of n bubbles.
func GroupScore(n int) int {
	if n < 2 {
		return 0
	}
	return (n - 1) * (n - 1)
}
