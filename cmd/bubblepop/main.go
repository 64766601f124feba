// bubblepop is a terminal bubble popping game for young players.
//
// Usage:
//
//	bubblepop list              - List available modes
//	bubblepop play [mode]       - Play campaign or zen
//	bubblepop menu              - Pick player and mode interactively
//	bubblepop scores [mode]     - Show high scores
//	bubblepop serve             - Start SSH server for remote play
//	bubblepop config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom bubblepop YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <name>       - Player name for scores
//	--age <years>         - Player age for score easing
//	--log-file <path>     - Write game logs to a file
//	--debug               - Log at debug level
//	--mute                - Silence sound captions
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagAge        int
	flagLogFile    string
	flagDebug      bool
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - pop matching bubbles in your terminal",
	Long: `Bubble Pop is a grid game for young players: pick a group of
touching bubbles of the same color to pop them, chain pops quickly for
combos, and find unicorns, superheroes, princesses and princes.

Available commands:
  list     - Show the game modes
  play     - Play campaign or zen directly
  menu     - Pick a player and mode
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  bubblepop menu
  bubblepop play --player Madison --age 3
  bubblepop play zen --difficulty easy
  bubblepop serve --ssh :2222
  bubblepop scores campaign`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom bubblepop config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagPlayer, "player", "", "Player name (default from config)")
	pf.IntVar(&flagAge, "age", -1, "Player age in years (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")
	pf.BoolVar(&flagMute, "mute", false, "Silence sound captions")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
