package snake

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Snake is one player-controlled or AI-controlled snake.
// Body[0] is the head. The snake owns its Body slice.
type Snake struct {
	Body          []core.Cell
	Dir           core.Direction
	PendingGrowth int
	Score         int
	Alive         bool
	IsAI          bool
	Effects       []ActiveEffect

	// BaseInterval is the time between moves before speed effects.
	BaseInterval time.Duration
	// NextDue is the simulation time of the next move.
	NextDue time.Duration
}

// NewSnake creates a one-cell snake at start heading in dir.
func NewSnake(start core.Cell, dir core.Direction, interval time.Duration) *Snake {
	return &Snake{
		Body:         []core.Cell{start},
		Dir:          dir,
		Alive:        true,
		BaseInterval: interval,
	}
}

// Head returns the head cell.
func (s *Snake) Head() core.Cell {
	return s.Body[0]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment is on c.
func (s *Snake) Occupies(c core.Cell) bool {
	for _, seg := range s.Body {
		if seg == c {
			return true
		}
	}
	return false
}

// HitsOwnBody reports whether the head overlaps a later segment.
func (s *Snake) HitsOwnBody() bool {
	head := s.Head()
	for _, seg := range s.Body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Cells returns every body cell as a set.
func (s *Snake) Cells() core.CellSet {
	return core.NewCellSet(s.Body...)
}

// Tail returns all cells behind the head.
func (s *Snake) Tail() core.CellSet {
	return core.NewCellSet(s.Body[1:]...)
}

// Advance pushes newHead and pops the tail unless growth is pending.
func (s *Snake) Advance(newHead core.Cell) {
	s.Body = append(s.Body, core.Cell{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead

	if s.PendingGrowth > 0 {
		s.PendingGrowth--
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// HasEffect reports whether an effect of the given kind is active.
func (s *Snake) HasEffect(kind PowerUpKind) bool {
	for _, e := range s.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Invincible reports whether collisions are currently ignored for this snake.
func (s *Snake) Invincible() bool {
	return s.HasEffect(PowerUpInvincibility)
}

// Interval returns the effective move interval with speed effects applied.
// SpeedBoost and SlowDown stack multiplicatively.
func (s *Snake) Interval(boostFactor, slowFactor float64) time.Duration {
	interval := float64(s.BaseInterval)
	if s.HasEffect(PowerUpSpeedBoost) {
		interval *= boostFactor
	}
	if s.HasEffect(PowerUpSlowDown) {
		interval *= slowFactor
	}
	if interval < 1 {
		interval = 1
	}
	return time.Duration(interval)
}

// Clone returns a deep copy.
func (s *Snake) Clone() *Snake {
	if s == nil {
		return nil
	}
	c := *s
	c.Body = append([]core.Cell(nil), s.Body...)
	c.Effects = append([]ActiveEffect(nil), s.Effects...)
	return &c
}
