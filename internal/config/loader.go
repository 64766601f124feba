package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const bubblePopFile = "bubblepop.yaml"

// LoadBubblePop loads bubble pop configuration. Values missing from the
// YAML keep their defaults.
// Search order: customPath -> ~/.arcade/configs/bubblepop.yaml -> ./configs/bubblepop.yaml -> embedded default
func LoadBubblePop(customPath string) (BubblePopConfig, error) {
	cfg := DefaultBubblePopConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(bubblePopFile), filepath.Join("configs", bubblePopFile)} {
		if path == "" {
			continue
		}
		if c, ok := tryLoad(path); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultBubblePopConfig()
	if err := yaml.Unmarshal(defaultBubblePopYAML, &embedded); err != nil {
		return DefaultBubblePopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (BubblePopConfig, bool) {
	cfg := DefaultBubblePopConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Marshal renders cfg as YAML.
func Marshal(cfg BubblePopConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// ApplyBubblePopPreset modifies the config based on a difficulty preset.
func ApplyBubblePopPreset(cfg *BubblePopConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Grid.Colors = min(cfg.Grid.Colors, 4)
		cfg.Scoring.MinMatch = 2
		cfg.PowerUps.Spawn.BaseChance = 0.15
		for i := range cfg.Levels {
			cfg.Levels[i].Moves += 5
		}
	case DifficultyHard:
		cfg.Scoring.MinMatch = 3
		cfg.PowerUps.Spawn.BaseChance = 0.05
		for i := range cfg.Levels {
			cfg.Levels[i].Moves = max(cfg.Levels[i].Moves-3, 5)
		}
	}
}
