package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/storage"
)

// loadConfig reads the YAML config and applies the difficulty preset.
func loadConfig() (config.BubblePopConfig, error) {
	cfg, err := config.LoadBubblePop(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBubblePopPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// flagPlayerOr returns the player named by --player/--age, falling back
// to the config's default player for whatever was not given.
func flagPlayerOr(cfg config.BubblePopConfig) bubblepop.Player {
	p := bubblepop.Player{Name: cfg.Player.Name, Age: cfg.Player.Age}
	if flagPlayer != "" {
		p.Name = flagPlayer
	}
	if flagAge >= 0 {
		p.Age = flagAge
	}
	if p.Name == "" {
		p.Name = "Player"
	}
	return p
}

// newLogger builds a charmbracelet logger honoring --debug.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// setupGame pushes config, player, mute and logging into the bubblepop
// package settings. The returned func closes the log file, if any.
// Game logs only go to --log-file so the terminal UI stays clean.
func setupGame() (func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	bubblepop.SetConfig(cfg)
	bubblepop.SetPlayer(flagPlayerOr(cfg))
	bubblepop.SetMuted(flagMute)

	cleanup := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		bubblepop.SetLogger(newLogger(f))
		cleanup = func() { f.Close() }
	}
	return cleanup, nil
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// gameIDForMode maps a mode name or game ID to a registered game ID.
func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "", "campaign", bubblepop.IDCampaign:
		return bubblepop.IDCampaign, nil
	case "zen", "endless", bubblepop.IDZen:
		return bubblepop.IDZen, nil
	}
	return "", fmt.Errorf("unknown mode %q (want campaign or zen)", mode)
}
