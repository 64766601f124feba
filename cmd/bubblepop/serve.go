package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bubble pop SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the player menu, a session
ID and its own game. Scores are stored per-server (all users share the
same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  bubblepop serve                           # Listen on :23234 with auto-generated key
  bubblepop serve --ssh :2222               # Listen on port 2222
  bubblepop serve --host-key ./my_host_key  # Use specific host key
  bubblepop serve --db ./scores.db --debug  # Use specific database, verbose logs

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cleanup, err := setupGame()
	if err != nil {
		return err
	}
	defer cleanup()

	// Server logs go to stderr; game logs follow them unless --log-file
	// already routed them elsewhere.
	logger := newLogger(os.Stderr)
	if flagLogFile == "" {
		bubblepop.SetLogger(logger.WithPrefix("bubblepop"))
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting bubble pop SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
