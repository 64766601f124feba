package engine

import "github.com/vovakirdan/bubble-pop/internal/dependencies/random"

// heartMask is the Princess footprint as (row, col) offsets from the trigger.
var heartMask = []Pos{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -2}, {0, -1}, {0, 0}, {0, 1}, {0, 2},
	{1, -2}, {1, -1}, {1, 0}, {1, 1}, {1, 2},
	{2, -1}, {2, 0}, {2, 1},
}

// crownMask is the Prince footprint as (row, col) offsets from the trigger.
var crownMask = []Pos{
	{-2, 0}, {-2, 1}, {-2, 2},
	{-1, -1}, {-1, 0}, {-1, 1}, {-1, 2}, {-1, 3},
	{0, -2}, {0, -1}, {0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, -1}, {1, 0}, {1, 1}, {1, 2}, {1, 3},
}

// HeartMask returns a copy of the Princess offsets.
func HeartMask() []Pos {
	return append([]Pos(nil), heartMask...)
}

// CrownMask returns a copy of the Prince offsets.
func CrownMask() []Pos {
	return append([]Pos(nil), crownMask...)
}

// PowerEffect describes what a power-up does when selected.
type PowerEffect struct {
	Kind     Kind
	Trigger  Pos
	Affected []Pos // cells to pop; always starts with the trigger
	Gilded   []Pos // Prince only: neighbours turned golden, not popped
	Color    Color // Unicorn only: the color that was cleared
}

// PowerResolver computes power-up footprints.
type PowerResolver struct {
	Random          random.Random
	Colors          int
	SuperheroRadius int
}

// Resolve returns the effect of triggering kind at trigger. Empty and
// popped cells are never included. A Normal kind yields only the trigger.
func (r PowerResolver) Resolve(b *Board, kind Kind, trigger Pos) PowerEffect {
	eff := PowerEffect{Kind: kind, Trigger: trigger}
	set := newPosSet(b)
	set.add(b, trigger)

	switch kind {
	case KindUnicorn:
		eff.Color = Color(r.Random.Intn(r.Colors))
		b.ForEachCell(func(c Cell) {
			if !c.Popped && !c.Golden && c.Color == eff.Color {
				set.add(b, c.Pos)
			}
		})
	case KindSuperhero:
		r2 := r.SuperheroRadius * r.SuperheroRadius
		b.ForEachCell(func(c Cell) {
			dr := c.Pos.Row - trigger.Row
			dc := c.Pos.Col - trigger.Col
			if dr*dr+dc*dc <= r2 {
				set.add(b, c.Pos)
			}
		})
	case KindPrincess:
		for _, off := range heartMask {
			set.add(b, trigger.Add(off.Row, off.Col))
		}
	case KindPrince:
		for _, off := range crownMask {
			set.add(b, trigger.Add(off.Row, off.Col))
		}
		eff.Gilded = gildedRing(b, set)
	}

	eff.Affected = set.list
	return eff
}

// gildedRing returns live Normal cells orthogonally touching the affected
// set without being part of it.
func gildedRing(b *Board, affected *posSet) []Pos {
	ring := newPosSet(b)
	for _, p := range affected.list {
		for _, d := range neighbors4 {
			n := p.Add(d.Row, d.Col)
			if !b.InBounds(n.Row, n.Col) || affected.has(b, n) {
				continue
			}
			c, ok := selectable(b, n.Row, n.Col)
			if !ok || c.Kind != KindNormal {
				continue
			}
			ring.add(b, n)
		}
	}
	return ring.list
}

// posSet is an insertion-ordered set of live board positions.
type posSet struct {
	seen []bool
	list []Pos
}

func newPosSet(b *Board) *posSet {
	return &posSet{seen: make([]bool, b.rows*b.cols)}
}

// add inserts p if it holds a live cell and is not already present.
func (s *posSet) add(b *Board, p Pos) {
	if _, ok := selectable(b, p.Row, p.Col); !ok {
		return
	}
	i := b.index(p.Row, p.Col)
	if s.seen[i] {
		return
	}
	s.seen[i] = true
	s.list = append(s.list, p)
}

func (s *posSet) has(b *Board, p Pos) bool {
	return s.seen[b.index(p.Row, p.Col)]
}
