// Package pathfind finds shortest 4-connected routes on a bounded grid.
package pathfind

import (
	"errors"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// ErrNotFound is returned when no route connects start and goal.
var ErrNotFound = errors.New("pathfind: no path")

const noParent = -1

// ShortestPath returns a shortest route from start to goal inclusive,
// stepping only through in-bounds cells that are not in blocked.
//
// Neighbours are expanded in grid order (up, down, left, right) so among
// equal-length routes the result is deterministic. start is never treated
// as blocked. If start equals goal the result is [start].
func ShortestPath(g core.Grid, start, goal core.Cell, blocked core.CellSet) ([]core.Cell, error) {
	if !g.InBounds(start) || !g.InBounds(goal) || blocked.Has(goal) {
		return nil, ErrNotFound
	}
	if start == goal {
		return []core.Cell{start}, nil
	}

	startIdx := g.Index(start)
	goalIdx := g.Index(goal)

	parent := make([]int, g.Size())
	for i := range parent {
		parent[i] = noParent
	}
	parent[startIdx] = startIdx

	queue := make([]int, 0, 64)
	queue = append(queue, startIdx)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == goalIdx {
			return trace(g, parent, startIdx, goalIdx), nil
		}

		for _, n := range g.Neighbors(g.At(cur)) {
			nIdx := g.Index(n)
			if parent[nIdx] != noParent || blocked.Has(n) {
				continue
			}
			parent[nIdx] = cur
			queue = append(queue, nIdx)
		}
	}

	return nil, ErrNotFound
}

// trace walks parent links back from goal and returns the route start→goal.
func trace(g core.Grid, parent []int, startIdx, goalIdx int) []core.Cell {
	n := 1
	for i := goalIdx; i != startIdx; i = parent[i] {
		n++
	}

	path := make([]core.Cell, n)
	i := goalIdx
	for k := n - 1; k >= 0; k-- {
		path[k] = g.At(i)
		i = parent[i]
	}
	return path
}
