package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeYAML returns the embedded default configuration document.
func DefaultSnakeYAML() []byte {
	return defaultSnakeYAML
}

// DefaultSnakeConfig returns the default snake configuration.
// It mirrors defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Width:  40,
			Height: 30,
		},
		Speed: SnakeSpeed{
			MoveInterval:     125 * time.Millisecond,
			AIMoveInterval:   125 * time.Millisecond,
			MinInterval:      50 * time.Millisecond,
			SpeedBoostFactor: 0.5,
			SlowDownFactor:   1.5,
		},
		Scoring: SnakeScoring{
			FoodPoints: 10,
			LevelThresholds: LevelThresholds{
				Classic:  50,
				AIBattle: 50,
				Obstacle: 30,
			},
		},
		PowerUps: SnakePowerUps{
			Enabled:        true,
			SpawnChance:    25,
			EatSpawnChance: 6,
			Cooldown:       4 * time.Second,
			Lifetime:       10 * time.Second,
			EffectDuration: 5 * time.Second,
			MaxActive:      2,
			Weights: PowerUpWeights{
				SpeedBoost:    3,
				SlowDown:      3,
				DoublePoints:  3,
				Invincibility: 1,
			},
		},
		Obstacles: SnakeObstacles{
			Base:        10,
			PerLevel:    2,
			MaxFraction: 0.15,
			SafeAhead:   3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
