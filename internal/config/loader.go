package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const snakeConfigFile = "snake.yaml"

// LoadSnake loads the snake configuration.
// Search order: customPath, ~/.arena/configs/snake.yaml, ./configs/snake.yaml,
// then the embedded default. Files only need the keys they override.
//
// A custom path that cannot be read or parsed is an error. The other
// locations are optional and skipped when missing or broken.
func LoadSnake(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseSnake(data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(snakeConfigFile), filepath.Join("configs", snakeConfigFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSnake(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil
	}
	return cfg, nil
}

// parseSnake decodes data on top of the default configuration.
func parseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// MarshalSnake renders a configuration as YAML.
func MarshalSnake(cfg SnakeConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "configs", filename)
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.PerLevel = 1
		cfg.PowerUps.EffectDuration = cfg.PowerUps.EffectDuration * 3 / 2
	case DifficultyHard:
		cfg.Obstacles.Base += 4
		cfg.Obstacles.PerLevel = 3
		cfg.PowerUps.Weights.Invincibility = 0
	}
}
