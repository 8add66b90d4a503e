package config

import (
	"time"
)

// Progression types accepted in difficulty.progression.type.
const (
	ProgressScore = "score" // Ramp up with the player's score
	ProgressMoves = "moves" // Ramp up with the number of moves made
	ProgressNone  = "none"
)

// DifficultyManager turns progress in a round into a speed-up of the
// move interval. The level runs from InitialLevel at the start of a round
// to 1.0 once progression reaches MaxAt.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, initial: clamp01(cfg.InitialLevel)}
}

// IsEnabled reports whether the level moves at all during a round.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// TracksMoves reports whether the level follows moves instead of score.
func (d *DifficultyManager) TracksMoves() bool {
	return d.IsEnabled() && d.cfg.Progression.Type == ProgressMoves
}

// Level returns the difficulty level in [0, 1].
func (d *DifficultyManager) Level(score, moves int) float64 {
	if !d.IsEnabled() {
		return d.initial
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = score
	case ProgressMoves:
		done = moves
	default:
		return d.initial
	}

	progress := clamp01(float64(done) / float64(max(1, d.cfg.Progression.MaxAt)))
	return d.initial + progress*(1-d.initial)
}

// Speed scales baseSpeed by up to 1+SpeedMultiplier at the top level.
func (d *DifficultyManager) Speed(baseSpeed float64, score, moves int) float64 {
	return baseSpeed * (1 + d.Level(score, moves)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval divides base by the current speed, never going under floor.
func (d *DifficultyManager) Interval(base, floor time.Duration, score, moves int) time.Duration {
	speed := d.Speed(1, score, moves)
	if speed <= 0 {
		return base
	}
	return max(floor, time.Duration(float64(base)/speed))
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
