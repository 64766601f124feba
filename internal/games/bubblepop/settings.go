package bubblepop

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"
)

// Player is who is popping: the name goes on the scoreboard and the age
// drives score easing and power-up luck.
type Player struct {
	Name string
	Age  int
}

// Roster is the built-in player list offered by the menu.
var Roster = []Player{
	{Name: "Madison", Age: 3},
	{Name: "James", Age: 4},
}

// Package-level variables for config. Set by the CLI and menus before a
// game is created; each game copies them on Reset.
var (
	settingsMu         sync.RWMutex
	activeConfig       = config.DefaultBubblePopConfig()
	activePlayer       = Player{Name: "Player"}
	selectedStartLevel int
	activeLogger       = log.New(io.Discard)
	muted              bool
)

// SetConfig replaces the configuration used by new games.
func SetConfig(cfg config.BubblePopConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	activeConfig = cfg
}

// ActiveConfig returns the configuration used by new games.
func ActiveConfig() config.BubblePopConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return activeConfig
}

// SetPlayer sets the default player for new games.
func SetPlayer(p Player) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	activePlayer = p
}

// CurrentPlayer returns the default player for new games.
func CurrentPlayer() Player {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return activePlayer
}

// SetStartLevel sets the starting campaign level (1-based). 0 means start from beginning.
func SetStartLevel(level int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return selectedStartLevel
}

// takeStartLevel returns the selected start level and clears it, so a
// restart goes back to level one.
func takeStartLevel() int {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	level := selectedStartLevel
	selectedStartLevel = 0
	return level
}

// SetLogger routes engine logs. nil discards them.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	activeLogger = l
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return activeLogger
}

// SetMuted silences sound captions in new games.
func SetMuted(m bool) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	muted = m
}

func isMuted() bool {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return muted
}

// engineConfig translates the YAML config into engine settings for mode.
func engineConfig(cfg config.BubblePopConfig, mode Mode, age, startLevel int) engine.Config {
	ec := engine.DefaultConfig()
	ec.Rows = cfg.Grid.Rows
	ec.Cols = cfg.Grid.Cols
	ec.Colors = cfg.Grid.Colors
	ec.BaseScore = cfg.Scoring.BaseScore
	ec.MinMatch = cfg.Scoring.MinMatch
	ec.ComboWindow = time.Duration(cfg.Scoring.ComboWindowMS) * time.Millisecond
	ec.ComboStep = cfg.Scoring.ComboStep

	pu := cfg.PowerUps
	ec.Spawn = engine.SpawnConfig{
		BaseChance: pu.Spawn.BaseChance,
		ComboBonus: pu.Spawn.ComboBonus,
		YoungBonus: pu.Spawn.YoungBonus,
		YoungAge:   pu.Spawn.YoungAge,
		MaxChance:  pu.Spawn.MaxChance,
		Weights: map[engine.Kind]int{
			engine.KindUnicorn:   pu.Unicorn.Weight,
			engine.KindSuperhero: pu.Superhero.Weight,
			engine.KindPrincess:  pu.Princess.Weight,
			engine.KindPrince:    pu.Prince.Weight,
		},
	}
	if pu.Superhero.Radius > 0 {
		ec.SuperheroRadius = pu.Superhero.Radius
	}

	if cfg.NoMoves == config.NoMovesEnd {
		ec.NoMoves = engine.NoMovesEnd
	}
	ec.MaxRegenerations = cfg.MaxRegenerations

	ec.PlayerAge = age
	ec.Difficulty = config.NewDifficultyManager(cfg.Difficulty).Multiplier
	ec.HoldUntilSettled = true

	switch mode {
	case ModeZen:
		ec.MoveLimit = 0
	default:
		ec.MoveLimit = cfg.Moves.Limit
		for _, lvl := range levelsOf(cfg) {
			ec.Levels = append(ec.Levels, engine.Level{Target: lvl.Target, Moves: lvl.Moves})
		}
		if startLevel > 0 && startLevel <= len(ec.Levels) {
			ec.StartLevel = startLevel
		}
	}
	return ec
}

const defaultLevelMoves = 20
