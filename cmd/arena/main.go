// arena is a terminal snake game with an AI opponent and obstacle levels.
//
// Usage:
//
//	arena list              - List game modes
//	arena play <mode>       - Play a mode
//	arena menu              - Pick modes interactively
//	arena scores [mode]     - Show best scores and history
//	arena serve             - Start SSH server for remote play
//	arena config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Frame rate (default: 30)
//	--seed <value>        - RNG seed for reproducible rounds
//	--db <path>           - Score history database (default: ~/.arena/scores.db)
//	--scores <path>       - Best score file (default: ~/.arena/highscores.yaml)
//	--config <path>       - Custom snake.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file, also while the TUI runs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagScoresPath string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger    = log.New(io.Discard)
	logCloser io.Closer
	snakeCfg  config.SnakeConfig
)

// fullScreen marks commands whose output belongs to Bubble Tea.
const fullScreen = "fullscreen"

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Snake Arena - snake in your terminal",
	Long: `Snake Arena is a terminal snake game with three modes:
classic, a race against a pathfinding AI snake, and an obstacle challenge.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View best scores and recent history
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  arena list
  arena play classic
  arena play ai_battle --difficulty hard
  arena menu
  arena serve --ssh :2222
  arena scores obstacle`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/scores.db", "Path to score history database")
	rootCmd.PersistentFlags().StringVar(&flagScoresPath, "scores", storage.DefaultHighScoresPath, "Path to best score file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger and loads the snake configuration for every command.
func setup(cmd *cobra.Command, _ []string) error {
	if err := setupLogger(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snakeCfg = cfg
	snake.SetConfig(cfg)
	snake.SetLogger(logger.WithPrefix("snake"))
	return nil
}

func setupLogger(cmd *cobra.Command) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out, logCloser = f, f
	case cmd.Annotations[fullScreen] != "":
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
		Level:           level,
	})
	return nil
}

// loadConfig reads snake.yaml, applies the difficulty preset and validates the result.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.SnakeConfig{}, err
		}
		config.ApplySnakePreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, err
	}
	return cfg, nil
}

// openServices opens the score stores. A history database that cannot be
// opened is logged and skipped; the game still works without it.
func openServices() tui.Services {
	services := tui.Services{
		Scores: storage.NewHighScores(flagScoresPath, logger.WithPrefix("scores")),
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("score history unavailable", "path", flagDBPath, "err", err)
		if logCloser == nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		}
		return services
	}
	services.Store = store
	return services
}

func closeServices(services tui.Services) {
	if services.Store != nil {
		if err := services.Store.Close(); err != nil {
			logger.Warn("closing score history", "err", err)
		}
	}
}
