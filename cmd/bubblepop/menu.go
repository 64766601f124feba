package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
	"github.com/vovakirdan/bubble-pop/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a player and mode interactively",
	Long: `Start in interactive menu mode.

Pick who is playing (or add a new player with a name and age), then
campaign, zen or a starting level. After a game ends you return to the
menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  bubblepop menu
  bubblepop menu --fps 30
  bubblepop menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cleanup, err := setupGame()
	if err != nil {
		return err
	}
	defer cleanup()

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil // User quit from scoreboard
		}

		bubblepop.SetPlayer(menuResult.Player)

		selection, selErr := tui.RunModeSelector(menuResult.Player, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		if selection == nil {
			continue // Back to player menu
		}
		if selection.Level > 0 {
			bubblepop.SetStartLevel(selection.Level)
		}

		game, err := registry.Create(selection.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
