package engine

import (
	"fmt"
	"time"
)

// NoMovesPolicy decides what happens when a refill leaves no legal move.
type NoMovesPolicy int

const (
	// NoMovesRegenerate rebuilds the board until it is solvable.
	NoMovesRegenerate NoMovesPolicy = iota
	// NoMovesEnd ends the session.
	NoMovesEnd
)

// Level is one campaign stage.
type Level struct {
	Target int // score needed to clear the level
	Moves  int // selections allowed on this level
}

// SpawnConfig controls pop-time power-up spawning.
type SpawnConfig struct {
	BaseChance float64
	ComboBonus float64 // added per combo step
	YoungBonus float64 // added when the player is younger than YoungAge
	YoungAge   int
	MaxChance  float64

	// Weights picks the power-up kind; kinds missing or <= 0 never spawn.
	Weights map[Kind]int
}

// Config holds constructor-time session settings.
type Config struct {
	Rows   int
	Cols   int
	Colors int

	BaseScore   int
	MinMatch    int
	ComboWindow time.Duration
	ComboStep   float64

	// MoveLimit caps selections; 0 means unlimited. Ignored when Levels
	// is set, where each level carries its own limit.
	MoveLimit  int
	Levels     []Level
	StartLevel int // 1-based; 0 starts at the first level

	SuperheroRadius int
	Spawn           SpawnConfig

	NoMoves          NoMovesPolicy
	MaxRegenerations int

	PlayerAge  int
	Difficulty func(age int) float64

	// HoldUntilSettled keeps the session busy after each resolution until
	// Settle is called, so a renderer can finish animating first.
	HoldUntilSettled bool
}

// DefaultConfig returns the classic 8x10, six-color setup.
func DefaultConfig() Config {
	return Config{
		Rows:            8,
		Cols:            10,
		Colors:          6,
		BaseScore:       10,
		MinMatch:        2,
		ComboWindow:     time.Second,
		ComboStep:       0.5,
		SuperheroRadius: 3,
		Spawn: SpawnConfig{
			BaseChance: 0.10,
			ComboBonus: 0.03,
			YoungBonus: 0.10,
			YoungAge:   7,
			MaxChance:  0.5,
			Weights: map[Kind]int{
				KindUnicorn:   1,
				KindSuperhero: 1,
				KindPrincess:  1,
				KindPrince:    1,
			},
		},
		NoMoves:          NoMovesRegenerate,
		MaxRegenerations: DefaultMaxAttempts,
		Difficulty:       DefaultDifficulty,
	}
}

// DefaultLevels mirrors the three classic campaign stages.
func DefaultLevels() []Level {
	return []Level{
		{Target: 100, Moves: 20},
		{Target: 250, Moves: 18},
		{Target: 500, Moves: 15},
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	case c.Colors < 1:
		return fmt.Errorf("%w: need at least one color, got %d", ErrInvalidConfig, c.Colors)
	case c.MinMatch < 1:
		return fmt.Errorf("%w: min match must be positive, got %d", ErrInvalidConfig, c.MinMatch)
	case c.BaseScore < 0:
		return fmt.Errorf("%w: base score must not be negative", ErrInvalidConfig)
	case c.MoveLimit < 0:
		return fmt.Errorf("%w: move limit must not be negative", ErrInvalidConfig)
	case c.SuperheroRadius < 0:
		return fmt.Errorf("%w: superhero radius must not be negative", ErrInvalidConfig)
	case c.StartLevel < 0 || (len(c.Levels) > 0 && c.StartLevel > len(c.Levels)):
		return fmt.Errorf("%w: start level %d out of range", ErrInvalidConfig, c.StartLevel)
	}
	for i, lvl := range c.Levels {
		if lvl.Moves <= 0 {
			return fmt.Errorf("%w: level %d needs a positive move count", ErrInvalidConfig, i+1)
		}
	}
	return nil
}

// withDefaults fills zero values that have an obvious default.
func (c Config) withDefaults() Config {
	if c.Difficulty == nil {
		c.Difficulty = DefaultDifficulty
	}
	if c.MaxRegenerations <= 0 {
		c.MaxRegenerations = DefaultMaxAttempts
	}
	return c
}
