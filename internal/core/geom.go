// Package core provides fundamental types and utilities shared by the game
// logic and the terminal front end. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// GridLayout places a rows x cols board on the screen, each board cell
// drawn CellW characters wide and CellH lines tall.
type GridLayout struct {
	X, Y         int
	Rows, Cols   int
	CellW, CellH int
}

// CenterGrid lays a board out in the middle of a screen, leaving top
// lines free for a HUD.
func CenterGrid(screenW, screenH, rows, cols, cellW, cellH, top int) GridLayout {
	w, h := cols*cellW, rows*cellH
	x := Max((screenW-w)/2, 0)
	y := Max(top+(screenH-top-h)/2, top)
	return GridLayout{X: x, Y: y, Rows: rows, Cols: cols, CellW: cellW, CellH: cellH}
}

// Bounds returns the screen area covered by the whole board.
func (g GridLayout) Bounds() Rect {
	return NewRect(g.X, g.Y, g.Cols*g.CellW, g.Rows*g.CellH)
}

// CellRect returns the screen area of one board cell.
func (g GridLayout) CellRect(row, col int) Rect {
	return NewRect(g.X+col*g.CellW, g.Y+row*g.CellH, g.CellW, g.CellH)
}

// CellAt maps a screen position back to a board cell.
func (g GridLayout) CellAt(x, y int) (row, col int, ok bool) {
	if g.CellW <= 0 || g.CellH <= 0 || !g.Bounds().Contains(x, y) {
		return 0, 0, false
	}
	return (y - g.Y) / g.CellH, (x - g.X) / g.CellW, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
