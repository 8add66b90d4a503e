// Package config provides YAML-based game configuration loading and
// difficulty management for the arena.
package config

import (
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for the snake modes.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Scoring    SnakeScoring     `yaml:"scoring"`
	PowerUps   SnakePowerUps    `yaml:"powerups"`
	Obstacles  SnakeObstacles   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the playfield size in cells.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeSpeed defines movement timing.
type SnakeSpeed struct {
	MoveInterval     time.Duration `yaml:"move_interval"`    // Human base interval between moves
	AIMoveInterval   time.Duration `yaml:"ai_move_interval"` // AI base interval between moves
	MinInterval      time.Duration `yaml:"min_interval"`     // Floor for difficulty speed-up
	SpeedBoostFactor float64       `yaml:"speed_boost_factor"`
	SlowDownFactor   float64       `yaml:"slow_down_factor"`
}

// SnakeScoring defines points and level progression.
type SnakeScoring struct {
	FoodPoints      int             `yaml:"food_points"`
	LevelThresholds LevelThresholds `yaml:"level_thresholds"` // Human score per level
}

// LevelThresholds is the score needed per level in each mode.
type LevelThresholds struct {
	Classic  int `yaml:"classic"`
	AIBattle int `yaml:"ai_battle"`
	Obstacle int `yaml:"obstacle"`
}

// For returns the threshold of mode. Unknown modes use the classic one.
func (t LevelThresholds) For(mode string) int {
	switch mode {
	case "ai_battle":
		return t.AIBattle
	case "obstacle":
		return t.Obstacle
	default:
		return t.Classic
	}
}

// SnakePowerUps defines power-up spawning and effect timing.
type SnakePowerUps struct {
	Enabled        bool           `yaml:"enabled"`
	SpawnChance    int            `yaml:"spawn_chance"`     // Percent, rolled once per cooldown
	EatSpawnChance int            `yaml:"eat_spawn_chance"` // Percent, rolled when the human eats
	Cooldown       time.Duration  `yaml:"cooldown"`
	Lifetime       time.Duration  `yaml:"lifetime"`        // Time a power-up stays on the field
	EffectDuration time.Duration  `yaml:"effect_duration"` // Time an effect stays active
	MaxActive      int            `yaml:"max_active"`
	Weights        PowerUpWeights `yaml:"weights"`
}

// PowerUpWeights is the relative spawn weight of each power-up kind.
type PowerUpWeights struct {
	SpeedBoost    int `yaml:"speed_boost"`
	SlowDown      int `yaml:"slow_down"`
	DoublePoints  int `yaml:"double_points"`
	Invincibility int `yaml:"invincibility"`
}

// Total returns the sum of all weights.
func (w PowerUpWeights) Total() int {
	return w.SpeedBoost + w.SlowDown + w.DoublePoints + w.Invincibility
}

// SnakeObstacles defines obstacle generation for the obstacle mode.
type SnakeObstacles struct {
	Base        int     `yaml:"base"`      // Obstacles at level 0
	PerLevel    int     `yaml:"per_level"` // Extra obstacles per level
	MaxFraction float64 `yaml:"max_fraction"`
	SafeAhead   int     `yaml:"safe_ahead"` // Cells kept clear in front of each head
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressScore, ProgressMoves or ProgressNone
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed multiplier added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", &ConfigError{Field: "difficulty", Reason: fmt.Sprintf("unknown preset %q", s)}
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that the configuration can drive a game.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Width < 3 || c.Grid.Height < 3:
		return &ConfigError{Field: "grid", Reason: fmt.Sprintf("%dx%d is smaller than 3x3", c.Grid.Width, c.Grid.Height)}
	case c.Speed.MoveInterval <= 0:
		return &ConfigError{Field: "speed.move_interval", Reason: "must be positive"}
	case c.Speed.AIMoveInterval <= 0:
		return &ConfigError{Field: "speed.ai_move_interval", Reason: "must be positive"}
	case c.Speed.MinInterval <= 0 || c.Speed.MinInterval > c.Speed.MoveInterval:
		return &ConfigError{Field: "speed.min_interval", Reason: "must be positive and not above move_interval"}
	case c.Speed.AIMoveInterval < c.Speed.MinInterval:
		return &ConfigError{Field: "speed.ai_move_interval", Reason: "must not be below min_interval"}
	case c.Speed.SpeedBoostFactor <= 0 || c.Speed.SpeedBoostFactor >= 1:
		return &ConfigError{Field: "speed.speed_boost_factor", Reason: "must be in (0, 1)"}
	case c.Speed.SlowDownFactor <= 1:
		return &ConfigError{Field: "speed.slow_down_factor", Reason: "must be above 1"}
	case c.Scoring.FoodPoints <= 0:
		return &ConfigError{Field: "scoring.food_points", Reason: "must be positive"}
	case c.Scoring.LevelThresholds.Classic <= 0 || c.Scoring.LevelThresholds.AIBattle <= 0 || c.Scoring.LevelThresholds.Obstacle <= 0:
		return &ConfigError{Field: "scoring.level_thresholds", Reason: "every mode needs a positive threshold"}
	case c.PowerUps.SpawnChance < 0 || c.PowerUps.SpawnChance > 100:
		return &ConfigError{Field: "powerups.spawn_chance", Reason: "must be a percentage"}
	case c.PowerUps.EatSpawnChance < 0 || c.PowerUps.EatSpawnChance > 100:
		return &ConfigError{Field: "powerups.eat_spawn_chance", Reason: "must be a percentage"}
	case c.PowerUps.MaxActive < 0:
		return &ConfigError{Field: "powerups.max_active", Reason: "must not be negative"}
	case c.PowerUps.Enabled && c.PowerUps.Weights.Total() <= 0:
		return &ConfigError{Field: "powerups.weights", Reason: "at least one weight must be positive"}
	case c.PowerUps.Enabled && (c.PowerUps.Lifetime <= 0 || c.PowerUps.EffectDuration <= 0):
		return &ConfigError{Field: "powerups", Reason: "lifetime and effect_duration must be positive"}
	case c.Obstacles.Base < 0 || c.Obstacles.PerLevel < 0:
		return &ConfigError{Field: "obstacles", Reason: "counts must not be negative"}
	case c.Obstacles.MaxFraction < 0 || c.Obstacles.MaxFraction > 1:
		return &ConfigError{Field: "obstacles.max_fraction", Reason: "must be in [0, 1]"}
	case !validProgression(c.Difficulty.Progression.Type):
		return &ConfigError{Field: "difficulty.progression.type", Reason: fmt.Sprintf("unknown type %q", c.Difficulty.Progression.Type)}
	}
	return nil
}

func validProgression(t string) bool {
	switch t {
	case ProgressScore, ProgressMoves, ProgressNone, "":
		return true
	}
	return false
}
