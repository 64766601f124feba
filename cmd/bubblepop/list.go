package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows the registered game modes and the campaign levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		if g.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Description)
		}
	}

	if cfg, err := loadConfig(); err == nil {
		bubblepop.SetConfig(cfg)
	}
	fmt.Println()
	fmt.Println("Campaign levels:")
	for _, lvl := range bubblepop.Levels() {
		fmt.Printf("  %d. %-10s target %d in %d moves\n", lvl.ID, lvl.Name, lvl.Target, lvl.Moves)
	}

	fmt.Println()
	fmt.Println("Run 'bubblepop play [campaign|zen]' to play.")
}
