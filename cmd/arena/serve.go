package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu.
Scores are stored per server, so all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arena/host_key

Examples:
  arena serve                           # Listen on :23234 with auto-generated key
  arena serve --ssh :2222               # Listen on port 2222
  arena serve --host-key ./my_host_key  # Use specific host key
  arena serve --db ./scores.db          # Use specific database

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
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	// Shutdown closes the stores.
	server, err := tui.NewSSHServer(cfg, openServices())
	if err != nil {
		return err
	}

	fmt.Printf("Starting arena SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
