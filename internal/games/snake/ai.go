package snake

import (
	"errors"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/pathfind"
)

// DecideMove returns the AI snake's next direction: the first step of a
// shortest path to food, or a safe fallback when food is unreachable.
// It does not modify either snake.
func DecideMove(g core.Grid, ai *Snake, food core.Cell, obstacles core.CellSet, opponent *Snake) core.Direction {
	dir, _ := decideMove(g, ai, food, obstacles, opponent)
	return dir
}

// decideMove also reports whether the fallback was used.
func decideMove(g core.Grid, ai *Snake, food core.Cell, obstacles core.CellSet, opponent *Snake) (core.Direction, bool) {
	blocked := aiBlocked(ai, obstacles, opponent)
	head := ai.Head()

	path, err := pathfind.ShortestPath(g, head, food, blocked)
	if err == nil && len(path) > 1 {
		if d := core.DirectionBetween(path[0], path[1]); d != core.DirNone {
			return d, false
		}
	}
	if err != nil && !errors.Is(err, pathfind.ErrNotFound) {
		return ai.Dir, true
	}

	return fallbackMove(g, head, food, blocked, ai.Dir), true
}

// aiBlocked is every cell the AI must not enter: obstacles, its own body
// behind the head, and the whole body of a living opponent.
func aiBlocked(ai *Snake, obstacles core.CellSet, opponent *Snake) core.CellSet {
	blocked := obstacles.Union(ai.Tail())
	if opponent != nil && opponent.Alive {
		blocked.Add(opponent.Body...)
	}
	return blocked
}

// fallbackMove picks an in-bounds, unblocked neighbour of head that is
// closest to food by Manhattan distance, with ties going to the first in
// up, down, left, right order. With no safe neighbour it keeps current.
func fallbackMove(g core.Grid, head, food core.Cell, blocked core.CellSet, current core.Direction) core.Direction {
	best := core.DirNone
	bestDist := 0
	for _, d := range core.Directions {
		next := head.Step(d)
		if !g.InBounds(next) || blocked.Has(next) {
			continue
		}
		dist := next.Manhattan(food)
		if best == core.DirNone || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == core.DirNone {
		return current
	}
	return best
}
