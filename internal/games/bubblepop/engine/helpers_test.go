package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// parseBoard builds a board from rows of runes:
// '0'-'9' normal colors, '.' empty, 'u' unicorn, 's' superhero,
// 'p' princess, 'k' prince (power-ups take color 0), 'g' golden color 0.
func parseBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.NotEmpty(t, rows)

	b := NewBoard(len(rows), len([]rune(rows[0])))
	for r, line := range rows {
		runes := []rune(line)
		require.Len(t, runes, b.Cols(), "row %d has the wrong width", r)
		for c, ch := range runes {
			switch {
			case ch == '.':
				continue
			case ch >= '0' && ch <= '9':
				b.Set(r, c, Cell{Color: Color(ch - '0')})
			case ch == 'u':
				b.Set(r, c, Cell{Kind: KindUnicorn})
			case ch == 's':
				b.Set(r, c, Cell{Kind: KindSuperhero})
			case ch == 'p':
				b.Set(r, c, Cell{Kind: KindPrincess})
			case ch == 'k':
				b.Set(r, c, Cell{Kind: KindPrince})
			case ch == 'g':
				b.Set(r, c, Cell{Golden: true})
			default:
				t.Fatalf("parseBoard: unknown rune %q", ch)
			}
		}
	}
	return b
}

// uniformBoard fills every slot with color 0.
func uniformBoard(rows, cols int) *Board {
	b := NewBoard(rows, cols)
	for _, p := range b.Positions() {
		b.Set(p.Row, p.Col, Cell{})
	}
	return b
}

// columnContents lists (color, kind) of occupied cells top to bottom.
func columnContents(b *Board, col int) []Cell {
	var out []Cell
	for row := 0; row < b.Rows(); row++ {
		if c, ok := b.Get(row, col); ok {
			out = append(out, Cell{Color: c.Color, Kind: c.Kind, Golden: c.Golden})
		}
	}
	return out
}

// assertPositionsConsistent checks every cell's Pos matches its slot.
func assertPositionsConsistent(t *testing.T, b *Board) {
	t.Helper()
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if c, ok := b.Get(row, col); ok {
				require.Equal(t, Pos{Row: row, Col: col}, c.Pos)
			}
		}
	}
}
