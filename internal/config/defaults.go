package config

import _ "embed"

//go:embed defaults/bubblepop.yaml
var defaultBubblePopYAML []byte

// DefaultBubblePopConfig returns the built-in configuration used when no
// YAML source can be read.
func DefaultBubblePopConfig() BubblePopConfig {
	return BubblePopConfig{
		Grid: BubbleGrid{
			Rows:   8,
			Cols:   10,
			Colors: 6,
		},
		Scoring: BubbleScoring{
			BaseScore:     10,
			MinMatch:      2,
			ComboWindowMS: 1000,
			ComboStep:     0.5,
		},
		Levels: []BubbleLevel{
			{Name: "Meadow", Target: 100, Moves: 20},
			{Name: "Rainbow", Target: 250, Moves: 18},
			{Name: "Castle", Target: 500, Moves: 15},
		},
		PowerUps: BubblePowerUps{
			Spawn: SpawnChance{
				BaseChance: 0.10,
				ComboBonus: 0.03,
				YoungBonus: 0.10,
				YoungAge:   7,
				MaxChance:  0.5,
			},
			Unicorn:   PowerUpConfig{Weight: 1},
			Superhero: PowerUpConfig{Weight: 1, Radius: 3},
			Princess:  PowerUpConfig{Weight: 1},
			Prince:    PowerUpConfig{Weight: 1},
		},
		NoMoves:          NoMovesRegenerate,
		MaxRegenerations: 1000,
		Difficulty: DifficultyConfig{
			Enabled: true,
			Brackets: []AgeBracket{
				{MaxAge: 7, Multiplier: 1.5},
				{MaxAge: 10, Multiplier: 1.2},
			},
		},
		Player: BubblePlayer{Name: "Player", Age: 0},
		Palette: []PaletteEntry{
			{Name: "Soft Red", Color: "bright_red"},
			{Name: "Sky Blue", Color: "bright_blue"},
			{Name: "Bright Green", Color: "bright_green"},
			{Name: "Sunny Yellow", Color: "bright_yellow"},
			{Name: "Soft Purple", Color: "bright_magenta"},
			{Name: "Turquoise", Color: "bright_cyan"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBubblePopYAML
}
