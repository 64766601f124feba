// Package config provides YAML-based configuration loading, difficulty
// presets and age-based scoring multipliers for bubble pop.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate when a loaded config cannot drive a game.
var ErrInvalidConfig = errors.New("config: invalid bubblepop config")

// BubblePopConfig contains all configuration for the bubble pop game.
type BubblePopConfig struct {
	Grid             BubbleGrid       `yaml:"grid"`
	Scoring          BubbleScoring    `yaml:"scoring"`
	Moves            BubbleMoves      `yaml:"moves"`
	Levels           []BubbleLevel    `yaml:"levels"`
	PowerUps         BubblePowerUps   `yaml:"power_ups"`
	NoMoves          string           `yaml:"no_moves"`
	MaxRegenerations int              `yaml:"max_regenerations"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
	Player           BubblePlayer     `yaml:"player"`
	Palette          []PaletteEntry   `yaml:"palette"`
}

// BubbleGrid defines board dimensions and the number of bubble colors.
type BubbleGrid struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	Colors int `yaml:"colors"`
}

// BubbleScoring defines the score formula inputs.
type BubbleScoring struct {
	BaseScore     int     `yaml:"base_score"`
	MinMatch      int     `yaml:"min_match"`
	ComboWindowMS int     `yaml:"combo_window_ms"`
	ComboStep     float64 `yaml:"combo_step"`
}

// BubbleMoves defines the per-game move budget. Zero means unlimited.
type BubbleMoves struct {
	Limit int `yaml:"limit"`
}

// BubbleLevel is one score target with its own move budget.
type BubbleLevel struct {
	Name   string `yaml:"name"`
	Target int    `yaml:"target"`
	Moves  int    `yaml:"moves"`
}

// BubblePowerUps configures spawning and per-kind parameters.
type BubblePowerUps struct {
	Spawn     SpawnChance   `yaml:"spawn"`
	Unicorn   PowerUpConfig `yaml:"unicorn"`
	Superhero PowerUpConfig `yaml:"superhero"`
	Princess  PowerUpConfig `yaml:"princess"`
	Prince    PowerUpConfig `yaml:"prince"`
}

// SpawnChance defines the probability that a pop spawns a power-up.
type SpawnChance struct {
	BaseChance float64 `yaml:"base_chance"`
	ComboBonus float64 `yaml:"combo_bonus"`
	YoungBonus float64 `yaml:"young_bonus"`
	YoungAge   int     `yaml:"young_age"`
	MaxChance  float64 `yaml:"max_chance"`
}

// PowerUpConfig holds the spawn weight of one power-up kind.
type PowerUpConfig struct {
	Weight int `yaml:"weight"`
	Radius int `yaml:"radius,omitempty"`
}

// BubblePlayer is the default player profile.
type BubblePlayer struct {
	Name string `yaml:"name"`
	Age  int    `yaml:"age"`
}

// PaletteEntry maps a bubble color index to a display name and terminal color.
type PaletteEntry struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// DifficultyConfig maps player age to a score multiplier.
type DifficultyConfig struct {
	Enabled  bool         `yaml:"enabled"`
	Brackets []AgeBracket `yaml:"brackets"`
}

// AgeBracket applies Multiplier to players younger than MaxAge.
type AgeBracket struct {
	MaxAge     int     `yaml:"max_age"`
	Multiplier float64 `yaml:"multiplier"`
}

// No-moves policies.
const (
	NoMovesRegenerate = "regenerate"
	NoMovesEnd        = "end"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables age scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports the first setting that would prevent a game from starting.
func (c BubblePopConfig) Validate() error {
	switch {
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols)
	case c.Grid.Colors < 1:
		return fmt.Errorf("%w: colors %d", ErrInvalidConfig, c.Grid.Colors)
	case c.Scoring.MinMatch < 1:
		return fmt.Errorf("%w: min_match %d", ErrInvalidConfig, c.Scoring.MinMatch)
	case c.Moves.Limit < 0:
		return fmt.Errorf("%w: moves limit %d", ErrInvalidConfig, c.Moves.Limit)
	case c.NoMoves != "" && c.NoMoves != NoMovesRegenerate && c.NoMoves != NoMovesEnd:
		return fmt.Errorf("%w: no_moves %q", ErrInvalidConfig, c.NoMoves)
	}
	for i, lvl := range c.Levels {
		if lvl.Target <= 0 {
			return fmt.Errorf("%w: level %d target %d", ErrInvalidConfig, i+1, lvl.Target)
		}
	}
	return nil
}
