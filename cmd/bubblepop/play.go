package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
	"github.com/vovakirdan/bubble-pop/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [campaign|zen]",
	Short: "Play bubble pop",
	Long: `Start playing. Without a mode you get a mode/level picker.

Controls:
  Arrows/WASD/hjkl - Move cursor
  Space/Enter      - Pop the group under the cursor
  Mouse click      - Pop the clicked group
  P/Esc            - Pause
  M                - Mute sound captions
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer colors, more power-ups, extra moves
  normal - Default rules, scores eased by age
  hard   - Groups of three, fewer power-ups and moves
  fixed  - Default rules without age easing

Examples:
  bubblepop play
  bubblepop play campaign --level 2
  bubblepop play zen --player James --age 4
  bubblepop play --difficulty easy --mute
  bubblepop play --config ./my-bubblepop.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (1-based)")
}

func runPlay(_ *cobra.Command, args []string) error {
	cleanup, err := setupGame()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := runtimeConfig()

	var gameID string
	if len(args) == 1 {
		if gameID, err = gameIDForMode(args[0]); err != nil {
			return err
		}
		if flagLevel > 0 {
			bubblepop.SetStartLevel(flagLevel)
		}
	} else {
		selection, selErr := tui.RunModeSelector(bubblepop.CurrentPlayer(), cfg)
		if selErr != nil {
			return selErr
		}
		if selection == nil {
			return nil // User pressed back or quit
		}
		gameID = selection.GameID
		if selection.Level > 0 {
			bubblepop.SetStartLevel(selection.Level)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}

	if g, ok := game.(*bubblepop.Game); ok && g.Err() != nil {
		fmt.Fprintf(os.Stderr, "Game ended with an error: %v\n", g.Err())
	}
	return nil
}
