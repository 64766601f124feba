package engine

import "errors"

var (
	// ErrUnsolvableBoard means regeneration never produced a legal move:
	// the palette is too large for the grid and minimum match size.
	ErrUnsolvableBoard = errors.New("engine: unsolvable board")

	ErrInvalidConfig  = errors.New("engine: invalid configuration")
	ErrAlreadyStarted = errors.New("engine: session already started")
)
