// Package core provides fundamental types and utilities for the arena.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"fmt"
	"sort"
)

// Cell is a discrete grid coordinate. X increases to the right, Y downward.
type Cell struct {
	X, Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring cell in the given direction.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.X-other.X) + Abs(c.Y-other.Y)
}

// Direction is one of the four unit moves on the grid.
type Direction int

const (
	DirNone Direction = iota // No intent; keep the current heading
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four moves in the fixed tie-breaking order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionBetween returns the direction that moves from a to an adjacent b.
// Returns DirNone if b is not a 4-neighbour of a.
func DirectionBetween(a, b Cell) Direction {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d
		}
	}
	return DirNone
}

// Grid is a fixed-size W×H coordinate space. It holds no cell contents.
type Grid struct {
	W int
	H int
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(w, h int) Grid {
	return Grid{W: w, H: h}
}

// InBounds returns true if the cell lies within [0,W)×[0,H).
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.W * g.H
}

// Index converts a cell to a flat row-major index (y*W + x).
func (g Grid) Index(c Cell) int {
	return c.Y*g.W + c.X
}

// At converts a flat index back to a cell.
func (g Grid) At(i int) Cell {
	return Cell{X: i % g.W, Y: i / g.W}
}

// Neighbors returns the in-bounds 4-neighbours of c in the order
// up, down, left, right.
func (g Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range Directions {
		n := c.Step(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Wrap maps a cell that left the grid back onto the opposite edge.
func (g Grid) Wrap(c Cell) Cell {
	if g.W <= 0 || g.H <= 0 {
		return c
	}
	c.X = ((c.X % g.W) + g.W) % g.W
	c.Y = ((c.Y % g.H) + g.H) % g.H
	return c
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set. A nil set contains nothing.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Add inserts cells into the set.
func (s CellSet) Add(cells ...Cell) {
	for _, c := range cells {
		s[c] = struct{}{}
	}
}

// Union returns a new set containing the cells of s and all others.
func (s CellSet) Union(others ...CellSet) CellSet {
	n := len(s)
	for _, o := range others {
		n += len(o)
	}
	out := make(CellSet, n)
	for c := range s {
		out[c] = struct{}{}
	}
	for _, o := range others {
		for c := range o {
			out[c] = struct{}{}
		}
	}
	return out
}

// Slice returns the cells sorted row-major, for deterministic iteration.
func (s CellSet) Slice() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
