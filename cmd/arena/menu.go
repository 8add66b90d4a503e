package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start the arena in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Esc from a paused or finished round returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select
  Tab          - High scores
  Q            - Quit

Examples:
  arena menu
  arena menu --fps 60
  arena menu --difficulty easy`,
	Annotations: map[string]string{fullScreen: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	services := openServices()
	defer closeServices(services)

	cfg := runtimeConfig()
	seeded := cfg.Seed != 0

	for {
		result, err := tui.RunMenu(services, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(services, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "mode", result.GameID, "err", err)
			continue
		}

		if !seeded {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("round started", "mode", result.GameID)

		backToMenu, err := tui.Run(game, services, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
