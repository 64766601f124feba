// Package engine implements the bubble-pop grid engine: board storage,
// region search, power-up effects, gravity, refill and the session state
// machine that ties them together. It has no terminal or rendering
// dependencies; front ends observe it through Listener and AudioSink.
package engine

import "fmt"

// Pos is a board coordinate. Row 0 is the top row.
type Pos struct {
	Row, Col int
}

// Add returns the position offset by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// String returns "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Color is a palette index in [0, Colors).
type Color int

// Kind distinguishes ordinary bubbles from power-ups.
type Kind int

const (
	KindNormal Kind = iota
	KindUnicorn
	KindSuperhero
	KindPrincess
	KindPrince
)

// PowerUpKinds lists every non-normal kind in spawn order.
var PowerUpKinds = []Kind{KindUnicorn, KindSuperhero, KindPrincess, KindPrince}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindUnicorn:
		return "Unicorn"
	case KindSuperhero:
		return "Superhero"
	case KindPrincess:
		return "Princess"
	case KindPrince:
		return "Prince"
	default:
		return "Unknown"
	}
}

// IsPowerUp reports whether the kind triggers an area effect.
func (k Kind) IsPowerUp() bool {
	return k >= KindUnicorn && k <= KindPrince
}

// Cell is the content of one occupied board slot.
type Cell struct {
	Color  Color
	Kind   Kind
	Popped bool
	Golden bool // gilded by a Prince; matches only other golden cells
	Pos    Pos  // kept equal to the slot index by Board
}

// matchClass groups cells that connect to each other.
func (c Cell) matchClass() int {
	if c.Golden {
		return -1
	}
	return int(c.Color)
}

// Matches reports whether two cells belong to the same match class.
func (c Cell) Matches(other Cell) bool {
	return c.matchClass() == other.matchClass()
}

type slot struct {
	cell Cell
	ok   bool
}

// Board is a fixed-size grid of optional cells.
// Out-of-bounds reads return empty and out-of-bounds writes are ignored;
// callers guard with InBounds.
type Board struct {
	rows  int
	cols  int
	slots []slot
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		slots: make([]slot, rows*cols),
	}
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

// Get returns the cell at (row, col) and whether the slot is occupied.
func (b *Board) Get(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	s := b.slots[b.index(row, col)]
	return s.cell, s.ok
}

// At is Get for a Pos.
func (b *Board) At(p Pos) (Cell, bool) {
	return b.Get(p.Row, p.Col)
}

// Set stores a cell at (row, col), stamping its position.
func (b *Board) Set(row, col int, c Cell) {
	if !b.InBounds(row, col) {
		return
	}
	c.Pos = Pos{Row: row, Col: col}
	b.slots[b.index(row, col)] = slot{cell: c, ok: true}
}

// Clear empties the slot at (row, col).
func (b *Board) Clear(row, col int) {
	if !b.InBounds(row, col) {
		return
	}
	b.slots[b.index(row, col)] = slot{}
}

// Move relocates the occupant of from to to, leaving from empty.
// Whatever occupied to is overwritten. No-op when from is empty.
func (b *Board) Move(from, to Pos) {
	c, ok := b.At(from)
	if !ok || !b.InBounds(to.Row, to.Col) {
		return
	}
	b.Clear(from.Row, from.Col)
	b.Set(to.Row, to.Col, c)
}

// ForEachCell visits every occupied cell in row-major order.
func (b *Board) ForEachCell(visit func(Cell)) {
	for i := range b.slots {
		if b.slots[i].ok {
			visit(b.slots[i].cell)
		}
	}
}

// Empty returns the positions of all empty slots in row-major order.
func (b *Board) Empty() []Pos {
	var empty []Pos
	for i := range b.slots {
		if !b.slots[i].ok {
			empty = append(empty, Pos{Row: i / b.cols, Col: i % b.cols})
		}
	}
	return empty
}

// Count returns the number of occupied slots.
func (b *Board) Count() int {
	n := 0
	for i := range b.slots {
		if b.slots[i].ok {
			n++
		}
	}
	return n
}

// Positions returns every board position in row-major order.
func (b *Board) Positions() []Pos {
	all := make([]Pos, 0, len(b.slots))
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			all = append(all, Pos{Row: row, Col: col})
		}
	}
	return all
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:  b.rows,
		cols:  b.cols,
		slots: make([]slot, len(b.slots)),
	}
	copy(c.slots, b.slots)
	return c
}
