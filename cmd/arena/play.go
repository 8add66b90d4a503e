package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R/Enter           - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start slow, speed up as you score
  normal - Start at 30% speed-up
  hard   - Start at 70% speed-up, more obstacles, no shield power-up
  fixed  - No speed-up beyond levels

Examples:
  arena play classic
  arena play ai_battle --difficulty hard
  arena play obstacle --config ./my-snake.yaml`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{fullScreen: "true"},
	RunE:        runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'arena list' to see available modes", mode)
	}

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	services := openServices()
	defer closeServices(services)

	logger.Info("round started", "mode", mode, "seed", flagSeed)
	if _, err := tui.Run(game, services, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the platform to the current terminal.
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
