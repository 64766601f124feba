package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardSetGet(t *testing.T) {
	b := NewBoard(3, 4)
	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, 4, b.Cols())
	assert.Equal(t, 0, b.Count())

	b.Set(1, 2, Cell{Color: 3, Pos: Pos{Row: 9, Col: 9}})
	c, ok := b.Get(1, 2)
	require.True(t, ok)
	assert.Equal(t, Color(3), c.Color)
	assert.Equal(t, Pos{Row: 1, Col: 2}, c.Pos, "Set must stamp the slot position")

	_, ok = b.Get(0, 0)
	assert.False(t, ok)
}

func TestBoardOutOfBounds(t *testing.T) {
	b := NewBoard(2, 2)

	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{1, 1, true},
		{-1, 0, false},
		{0, -1, false},
		{2, 0, false},
		{0, 2, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.InBounds(tt.row, tt.col), "InBounds(%d, %d)", tt.row, tt.col)
	}

	b.Set(5, 5, Cell{})
	b.Clear(-1, 0)
	_, ok := b.Get(5, 5)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Count())
}

func TestBoardMoveKeepsPosition(t *testing.T) {
	b := parseBoard(t,
		"1.",
		"..",
	)
	b.Move(Pos{0, 0}, Pos{1, 0})

	_, ok := b.Get(0, 0)
	assert.False(t, ok)
	c, ok := b.Get(1, 0)
	require.True(t, ok)
	assert.Equal(t, Color(1), c.Color)
	assertPositionsConsistent(t, b)

	// Moving from an empty slot is a no-op.
	b.Move(Pos{0, 1}, Pos{1, 1})
	_, ok = b.Get(1, 1)
	assert.False(t, ok)
}

func TestBoardForEachCellOrder(t *testing.T) {
	b := parseBoard(t,
		"1.2",
		".3.",
	)
	var seen []Color
	b.ForEachCell(func(c Cell) { seen = append(seen, c.Color) })
	assert.Equal(t, []Color{1, 2, 3}, seen)
	assert.Equal(t, []Pos{{0, 1}, {1, 0}, {1, 2}}, b.Empty())
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := parseBoard(t, "12")
	clone := b.Clone()
	clone.Clear(0, 0)

	_, ok := b.Get(0, 0)
	assert.True(t, ok, "clearing the clone must not touch the original")
	assert.Equal(t, 1, clone.Count())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Prince", KindPrince.String())
	assert.True(t, KindUnicorn.IsPowerUp())
	assert.False(t, KindNormal.IsPowerUp())
	assert.Equal(t, "(2,3)", Pos{Row: 2, Col: 3}.String())
}
