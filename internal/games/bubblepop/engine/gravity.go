package engine

// Move records one cell falling from From to To during compaction.
type Move struct {
	From Pos
	To   Pos
}

// Compact drops every occupied cell to the lowest free slot beneath it,
// column by column. Relative order within a column is preserved. The board
// is in its final state on return; the moves are for animation.
func Compact(b *Board) []Move {
	var moves []Move
	for col := 0; col < b.cols; col++ {
		write := b.rows - 1
		for row := b.rows - 1; row >= 0; row-- {
			if _, ok := b.Get(row, col); !ok {
				continue
			}
			if row != write {
				from := Pos{Row: row, Col: col}
				to := Pos{Row: write, Col: col}
				b.Move(from, to)
				moves = append(moves, Move{From: from, To: to})
			}
			write--
		}
	}
	return moves
}
