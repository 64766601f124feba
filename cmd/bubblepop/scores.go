package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/registry"
	"github.com/vovakirdan/bubble-pop/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|zen]",
	Short: "Show high scores",
	Long: `Display the top high scores for a mode, for everyone or for one
player.

Examples:
  bubblepop scores
  bubblepop scores zen
  bubblepop scores --of Madison --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "of", "", "Only show scores of this player")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubblepop play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  |  Games: %d  |  Players: %d  |  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
	}
	if flagScoresPlayer != "" {
		if best, err := store.PlayerBest(gameID, flagScoresPlayer); err == nil {
			fmt.Printf("%s's best: %d\n", flagScoresPlayer, best)
		}
	}
	return nil
}
