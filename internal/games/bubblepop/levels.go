// Package bubblepop implements the bubble pop game with campaign and zen modes.
package bubblepop

import "github.com/vovakirdan/bubble-pop/internal/config"

// Level describes a campaign level with a score target and a move budget.
type Level struct {
	ID     int
	Name   string
	Target int
	Moves  int
}

// Levels returns the campaign levels of the active configuration.
func Levels() []Level {
	return levelsOf(ActiveConfig())
}

func levelsOf(cfg config.BubblePopConfig) []Level {
	levels := make([]Level, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		levels[i] = Level{ID: i + 1, Name: lvl.Name, Target: lvl.Target, Moves: lvl.Moves}
		if levels[i].Moves <= 0 {
			levels[i].Moves = cfg.Moves.Limit
		}
		if levels[i].Moves <= 0 {
			levels[i].Moves = defaultLevelMoves
		}
	}
	return levels
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(ActiveConfig().Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	levels := Levels()
	if index < 0 || index >= len(levels) {
		return nil
	}
	return &levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the score targets of all levels.
func LevelTargets() []int {
	levels := Levels()
	targets := make([]int, len(levels))
	for i, lvl := range levels {
		targets[i] = lvl.Target
	}
	return targets
}
