package config

import "sort"

// DifficultyManager turns a player's age into a score multiplier.
type DifficultyManager struct {
	cfg      DifficultyConfig
	brackets []AgeBracket
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	brackets := make([]AgeBracket, len(cfg.Brackets))
	copy(brackets, cfg.Brackets)
	sort.Slice(brackets, func(i, j int) bool { return brackets[i].MaxAge < brackets[j].MaxAge })
	return &DifficultyManager{cfg: cfg, brackets: brackets}
}

// SetEnabled enables or disables age scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether age scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && len(d.brackets) > 0
}

// Multiplier returns the score multiplier for age. Unknown ages
// (zero or negative) score at 1.0.
func (d *DifficultyManager) Multiplier(age int) float64 {
	if !d.IsEnabled() || age <= 0 {
		return 1.0
	}
	for _, b := range d.brackets {
		if age < b.MaxAge {
			if b.Multiplier <= 0 {
				return 1.0
			}
			return b.Multiplier
		}
	}
	return 1.0
}
