package engine

// neighbors4 are the orthogonal offsets used for region search.
var neighbors4 = [4]Pos{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// selectable reports whether the slot holds a live (unpopped) cell.
func selectable(b *Board, row, col int) (Cell, bool) {
	c, ok := b.Get(row, col)
	if !ok || c.Popped {
		return Cell{}, false
	}
	return c, true
}

// FindConnected returns the region of same-class cells 4-connected to the
// seed, in breadth-first order starting with the seed. Popped and empty
// slots are walls. Returns nil when the seed itself is empty, popped or
// off the board.
func FindConnected(b *Board, row, col int) []Pos {
	seed, ok := selectable(b, row, col)
	if !ok {
		return nil
	}

	visited := make([]bool, b.rows*b.cols)
	visited[b.index(row, col)] = true

	region := []Pos{seed.Pos}
	for head := 0; head < len(region); head++ {
		cur := region[head]
		for _, d := range neighbors4 {
			next := cur.Add(d.Row, d.Col)
			if !b.InBounds(next.Row, next.Col) || visited[b.index(next.Row, next.Col)] {
				continue
			}
			c, ok := selectable(b, next.Row, next.Col)
			if !ok || !c.Matches(seed) {
				continue
			}
			visited[b.index(next.Row, next.Col)] = true
			region = append(region, next)
		}
	}
	return region
}

// FindMove returns a position whose selection would be legal, scanning in
// row-major order. Power-ups are always legal.
func FindMove(b *Board, minMatch int) (Pos, bool) {
	seen := make([]bool, b.rows*b.cols)
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			c, ok := selectable(b, row, col)
			if !ok {
				continue
			}
			if c.Kind.IsPowerUp() {
				return c.Pos, true
			}
			if seen[b.index(row, col)] {
				continue
			}
			region := FindConnected(b, row, col)
			if len(region) >= minMatch {
				return c.Pos, true
			}
			for _, p := range region {
				seen[b.index(p.Row, p.Col)] = true
			}
		}
	}
	return Pos{}, false
}

// HasLegalMove reports whether any selection on the board would pop.
func HasLegalMove(b *Board, minMatch int) bool {
	_, ok := FindMove(b, minMatch)
	return ok
}
