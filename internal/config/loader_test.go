package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bubblepop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	embedded := DefaultBubblePopConfig()
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML(), &embedded))

	assert.Equal(t, DefaultBubblePopConfig(), embedded)
	assert.NoError(t, embedded.Validate())
}

func TestLoadCustomPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: 5
scoring:
  base_score: 25
player:
  name: Madison
  age: 3
`)

	cfg, err := LoadBubblePop(path)
	require.NoError(t, err)

	def := DefaultBubblePopConfig()
	assert.Equal(t, 5, cfg.Grid.Rows)
	assert.Equal(t, def.Grid.Cols, cfg.Grid.Cols)
	assert.Equal(t, def.Grid.Colors, cfg.Grid.Colors)
	assert.Equal(t, 25, cfg.Scoring.BaseScore)
	assert.Equal(t, def.Scoring.MinMatch, cfg.Scoring.MinMatch)
	assert.Equal(t, def.Levels, cfg.Levels)
	assert.Equal(t, "Madison", cfg.Player.Name)
	assert.Equal(t, 3, cfg.Player.Age)
}

func TestLoadCustomReplacesLevels(t *testing.T) {
	path := writeConfig(t, `
levels:
  - name: Only
    target: 42
    moves: 3
`)

	cfg, err := LoadBubblePop(path)
	require.NoError(t, err)
	require.Len(t, cfg.Levels, 1)
	assert.Equal(t, BubbleLevel{Name: "Only", Target: 42, Moves: 3}, cfg.Levels[0])
}

func TestLoadCustomErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBubblePop(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadBubblePop(writeConfig(t, "grid: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadBubblePop(writeConfig(t, "grid:\n  rows: 0\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestTryLoadSkipsInvalid(t *testing.T) {
	_, ok := tryLoad(writeConfig(t, "no_moves: sometimes\n"))
	assert.False(t, ok)

	cfg, ok := tryLoad(writeConfig(t, "no_moves: end\n"))
	assert.True(t, ok)
	assert.Equal(t, NoMovesEnd, cfg.NoMoves)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BubblePopConfig)
	}{
		{"zero cols", func(c *BubblePopConfig) { c.Grid.Cols = 0 }},
		{"no colors", func(c *BubblePopConfig) { c.Grid.Colors = 0 }},
		{"min match", func(c *BubblePopConfig) { c.Scoring.MinMatch = 0 }},
		{"negative moves", func(c *BubblePopConfig) { c.Moves.Limit = -1 }},
		{"unknown policy", func(c *BubblePopConfig) { c.NoMoves = "shuffle" }},
		{"level target", func(c *BubblePopConfig) { c.Levels[1].Target = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBubblePopConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	cfg := DefaultBubblePopConfig()
	cfg.Player.Name = "James"
	cfg.NoMoves = NoMovesEnd

	data, err := Marshal(cfg)
	require.NoError(t, err)

	loaded, err := LoadBubblePop(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParsePreset(t *testing.T) {
	for in, want := range map[string]DifficultyPreset{
		"":       DifficultyNormal,
		"normal": DifficultyNormal,
		"easy":   DifficultyEasy,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
	} {
		got, err := ParsePreset(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
	assert.True(t, IsFixedPreset(DifficultyFixed))
	assert.False(t, IsFixedPreset(DifficultyHard))
}

func TestApplyBubblePopPreset(t *testing.T) {
	def := DefaultBubblePopConfig()

	t.Run("easy", func(t *testing.T) {
		cfg := DefaultBubblePopConfig()
		ApplyBubblePopPreset(&cfg, DifficultyEasy)
		assert.True(t, cfg.Difficulty.Enabled)
		assert.Equal(t, 4, cfg.Grid.Colors)
		assert.Equal(t, 2, cfg.Scoring.MinMatch)
		assert.InDelta(t, 0.15, cfg.PowerUps.Spawn.BaseChance, 1e-9)
		for i := range cfg.Levels {
			assert.Equal(t, def.Levels[i].Moves+5, cfg.Levels[i].Moves)
		}
	})

	t.Run("hard", func(t *testing.T) {
		cfg := DefaultBubblePopConfig()
		cfg.Levels = append(cfg.Levels, BubbleLevel{Name: "Tiny", Target: 10, Moves: 6})
		ApplyBubblePopPreset(&cfg, DifficultyHard)
		assert.Equal(t, 3, cfg.Scoring.MinMatch)
		assert.InDelta(t, 0.05, cfg.PowerUps.Spawn.BaseChance, 1e-9)
		assert.Equal(t, def.Levels[0].Moves-3, cfg.Levels[0].Moves)
		assert.Equal(t, 5, cfg.Levels[len(cfg.Levels)-1].Moves)
	})

	t.Run("normal leaves gameplay alone", func(t *testing.T) {
		cfg := DefaultBubblePopConfig()
		cfg.Difficulty.Enabled = false
		ApplyBubblePopPreset(&cfg, DifficultyNormal)
		assert.True(t, cfg.Difficulty.Enabled)
		cfg.Difficulty.Enabled = def.Difficulty.Enabled
		assert.Equal(t, def, cfg)
	})

	t.Run("fixed disables age scaling", func(t *testing.T) {
		cfg := DefaultBubblePopConfig()
		ApplyBubblePopPreset(&cfg, DifficultyFixed)
		assert.False(t, cfg.Difficulty.Enabled)
		assert.Equal(t, def.Scoring, cfg.Scoring)
	})
}

func TestDifficultyMultiplier(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled: true,
		// Out of order on purpose; brackets are sorted by age.
		Brackets: []AgeBracket{
			{MaxAge: 10, Multiplier: 1.2},
			{MaxAge: 7, Multiplier: 1.5},
		},
	})

	tests := []struct {
		age  int
		want float64
	}{
		{-1, 1.0},
		{0, 1.0},
		{3, 1.5},
		{6, 1.5},
		{7, 1.2},
		{9, 1.2},
		{10, 1.0},
		{40, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, dm.Multiplier(tt.age), 1e-9, "age %d", tt.age)
	}

	dm.SetEnabled(false)
	assert.False(t, dm.IsEnabled())
	assert.InDelta(t, 1.0, dm.Multiplier(3), 1e-9)
}

func TestDifficultyNoBrackets(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Enabled: true})
	assert.False(t, dm.IsEnabled())
	assert.InDelta(t, 1.0, dm.Multiplier(4), 1e-9)
}
