package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the snake configuration after --config and --difficulty
have been applied. The output is valid snake.yaml and can be saved to
~/.arena/configs/snake.yaml as a starting point.

Examples:
  arena config
  arena config --difficulty hard > ~/.arena/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		out, err := config.MarshalSnake(snakeCfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}
