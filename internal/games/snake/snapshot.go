package snake

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// SnakeView is a copy of one snake's visible state.
type SnakeView struct {
	Body    []core.Cell
	Dir     core.Direction
	Score   int
	Alive   bool
	Effects []ActiveEffect
}

// Snapshot captures the complete game state for determinism testing and rendering.
type Snapshot struct {
	Tick      uint64
	Now       time.Duration
	Mode      Mode
	Phase     Phase
	Level     int
	Grid      core.Grid
	Player    SnakeView
	AI        *SnakeView // Nil outside AI battle
	Food      core.Cell
	Obstacles []core.Cell // Row-major order
	PowerUps  []PowerUp
	Result    TickResult
	HighScore int
}

func viewOf(s *Snake) SnakeView {
	if s == nil {
		return SnakeView{}
	}
	c := s.Clone()
	return SnakeView{
		Body:    c.Body,
		Dir:     c.Dir,
		Score:   c.Score,
		Alive:   c.Alive,
		Effects: c.Effects,
	}
}

// Snapshot returns a deep copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Now:       g.now,
		Mode:      g.mode,
		Phase:     g.phase,
		Level:     g.level,
		Grid:      g.grid,
		Player:    viewOf(g.player),
		Food:      g.food,
		Obstacles: g.obstacles.Slice(),
		Result:    g.lastResult,
		HighScore: g.HighScore(),
	}
	if g.ai != nil {
		v := viewOf(g.ai)
		snap.AI = &v
	}
	if g.powerups != nil {
		snap.PowerUps = g.powerups.Active()
	}
	return snap
}
