package snake

import (
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// ObstacleManager generates obstacle layouts for the obstacle mode.
type ObstacleManager struct {
	cfg config.SnakeObstacles
	rng Rand
}

// NewObstacleManager creates an obstacle generator.
func NewObstacleManager(cfg config.SnakeObstacles, rng Rand) *ObstacleManager {
	return &ObstacleManager{cfg: cfg, rng: rng}
}

// Count returns how many obstacles a level asks for on grid g, before
// free-cell limits. It never decreases as level grows.
func (om *ObstacleManager) Count(level int, g core.Grid) int {
	if level < 0 {
		level = 0
	}
	n := om.cfg.Base + om.cfg.PerLevel*level
	if limit := int(om.cfg.MaxFraction * float64(g.Size())); n > limit {
		n = limit
	}
	return n
}

// Generate places Count(level) obstacles on cells outside excluded.
// Cells come from the interior ring when the grid is at least 3×3, so the
// border rows and columns stay open. Fewer obstacles are placed when there
// are not enough free cells.
func (om *ObstacleManager) Generate(level int, g core.Grid, excluded core.CellSet) core.CellSet {
	minX, minY, maxX, maxY := 0, 0, g.W-1, g.H-1
	if g.W >= 3 && g.H >= 3 {
		minX, minY, maxX, maxY = 1, 1, g.W-2, g.H-2
	}

	var candidates []core.Cell
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := core.C(x, y)
			if !excluded.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}

	n := min(om.Count(level, g), len(candidates))
	out := make(core.CellSet, n)

	// Partial Fisher-Yates: the first n slots become a uniform sample.
	for i := 0; i < n; i++ {
		j := i + om.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		out.Add(candidates[i])
	}
	return out
}

// cellsAhead returns up to n in-bounds cells in front of s's head.
func cellsAhead(g core.Grid, s *Snake, n int) []core.Cell {
	var out []core.Cell
	c := s.Head()
	for i := 0; i < n; i++ {
		c = c.Step(s.Dir)
		if !g.InBounds(c) {
			break
		}
		out = append(out, c)
	}
	return out
}
