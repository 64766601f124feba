package engine

import (
	"fmt"

	"github.com/vovakirdan/bubble-pop/internal/dependencies/random"
)

// DefaultMaxAttempts bounds whole-board regeneration.
const DefaultMaxAttempts = 1000

// FillResult reports what a refill created.
type FillResult struct {
	Filled      []Pos // every position that received a new cell
	Regenerated int   // whole-board regenerations performed, 0 if none
}

// RefillPolicy creates new cells for empty slots and keeps the board
// solvable.
type RefillPolicy struct {
	Random      random.Random
	Colors      int
	MinMatch    int
	MaxAttempts int

	// Regenerate rebuilds the whole board when a fill leaves no legal
	// move. When false the caller decides what a dead board means.
	Regenerate bool
}

func (p RefillPolicy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p RefillPolicy) newCell() Cell {
	return Cell{Color: Color(p.Random.Intn(p.Colors)), Kind: KindNormal}
}

// Fill assigns a random Normal cell to every empty slot. If that leaves no
// legal move and Regenerate is set, the board is rebuilt from scratch until
// it is solvable; ErrUnsolvableBoard is returned once MaxAttempts is spent.
func (p RefillPolicy) Fill(b *Board) (FillResult, error) {
	empty := b.Empty()
	for _, pos := range empty {
		b.Set(pos.Row, pos.Col, p.newCell())
	}

	res := FillResult{Filled: empty}
	if !p.Regenerate || HasLegalMove(b, p.MinMatch) {
		return res, nil
	}

	attempts, err := p.regenerate(b)
	res.Regenerated = attempts
	res.Filled = b.Positions()
	return res, err
}

// Generate builds a new solvable board.
func (p RefillPolicy) Generate(rows, cols int) (*Board, error) {
	b := NewBoard(rows, cols)
	for _, pos := range b.Positions() {
		b.Set(pos.Row, pos.Col, p.newCell())
	}
	if HasLegalMove(b, p.MinMatch) {
		return b, nil
	}
	if _, err := p.regenerate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// regenerate overwrites every slot until the board has a legal move.
func (p RefillPolicy) regenerate(b *Board) (int, error) {
	limit := p.maxAttempts()
	all := b.Positions()
	for attempt := 1; attempt <= limit; attempt++ {
		for _, pos := range all {
			b.Set(pos.Row, pos.Col, p.newCell())
		}
		if HasLegalMove(b, p.MinMatch) {
			return attempt, nil
		}
	}
	return limit, fmt.Errorf("%w: %dx%d board with %d colors, min match %d, after %d attempts",
		ErrUnsolvableBoard, b.rows, b.cols, p.Colors, p.MinMatch, limit)
}
