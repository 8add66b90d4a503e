package snake

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// Rand is the random source used by the spawners.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PowerUpKind represents the different power-up effects.
type PowerUpKind int

const (
	PowerUpSpeedBoost    PowerUpKind = iota // Halves the move interval
	PowerUpSlowDown                         // Lengthens the move interval
	PowerUpDoublePoints                     // Food is worth twice as much
	PowerUpInvincibility                    // Collisions are ignored
	powerUpKindCount
)

// Glyph returns the display character for a power-up kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpSpeedBoost:
		return '»'
	case PowerUpSlowDown:
		return '«'
	case PowerUpDoublePoints:
		return '$'
	case PowerUpInvincibility:
		return '♦'
	default:
		return '?'
	}
}

// Color returns the display color for a power-up kind.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpSpeedBoost:
		return core.ColorBrightCyan
	case PowerUpSlowDown:
		return core.ColorMagenta
	case PowerUpDoublePoints:
		return core.ColorBrightYellow
	case PowerUpInvincibility:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeedBoost:
		return "Speed"
	case PowerUpSlowDown:
		return "Slow"
	case PowerUpDoublePoints:
		return "x2"
	case PowerUpInvincibility:
		return "Shield"
	default:
		return "?"
	}
}

// PowerUp is a collectible lying on the field.
type PowerUp struct {
	Cell      core.Cell
	Kind      PowerUpKind
	SpawnedAt time.Duration
	Lifetime  time.Duration
}

// Expired reports whether the power-up's lifetime has elapsed at now.
func (p PowerUp) Expired(now time.Duration) bool {
	return now-p.SpawnedAt >= p.Lifetime
}

// ActiveEffect is a timed modifier attached to a snake.
type ActiveEffect struct {
	Kind      PowerUpKind
	Remaining time.Duration
}

// PowerUpManager handles spawning, expiry and consumption of power-ups.
type PowerUpManager struct {
	cfg   config.SnakePowerUps
	grid  core.Grid
	rng   Rand
	field []PowerUp

	lastSpawn time.Duration
}

// NewPowerUpManager creates a manager for the given grid.
func NewPowerUpManager(cfg config.SnakePowerUps, grid core.Grid, rng Rand) *PowerUpManager {
	return &PowerUpManager{
		cfg:  cfg,
		grid: grid,
		rng:  rng,
	}
}

// Reset clears the field and restarts the spawn cooldown at now.
func (pm *PowerUpManager) Reset(now time.Duration) {
	pm.field = pm.field[:0]
	pm.lastSpawn = now
}

// Active returns a copy of the power-ups currently on the field.
func (pm *PowerUpManager) Active() []PowerUp {
	out := make([]PowerUp, len(pm.field))
	copy(out, pm.field)
	return out
}

// Cells returns the cells holding power-ups.
func (pm *PowerUpManager) Cells() core.CellSet {
	s := make(core.CellSet, len(pm.field))
	for _, p := range pm.field {
		s.Add(p.Cell)
	}
	return s
}

// TrySpawn rolls the periodic spawn chance. It does nothing until the
// cooldown since the last spawn has elapsed or while MaxActive power-ups
// are already on the field. The chosen cell never overlaps occupied.
func (pm *PowerUpManager) TrySpawn(now time.Duration, occupied core.CellSet) (PowerUp, bool) {
	if now-pm.lastSpawn < pm.cfg.Cooldown {
		return PowerUp{}, false
	}
	// The cooldown restarts whether or not the roll succeeds.
	pm.lastSpawn = now
	return pm.spawn(now, occupied, pm.cfg.SpawnChance)
}

// RollOnEat rolls the spawn chance granted when the player eats food.
// It respects MaxActive but not the cooldown.
func (pm *PowerUpManager) RollOnEat(now time.Duration, occupied core.CellSet) (PowerUp, bool) {
	p, ok := pm.spawn(now, occupied, pm.cfg.EatSpawnChance)
	if ok {
		pm.lastSpawn = now
	}
	return p, ok
}

func (pm *PowerUpManager) spawn(now time.Duration, occupied core.CellSet, chance int) (PowerUp, bool) {
	if !pm.cfg.Enabled || len(pm.field) >= pm.cfg.MaxActive {
		return PowerUp{}, false
	}
	if pm.rng.Intn(100) >= chance {
		return PowerUp{}, false
	}

	blocked := occupied.Union(pm.Cells())
	cell, ok := randomFreeCell(pm.grid, blocked, pm.rng)
	if !ok {
		return PowerUp{}, false
	}

	p := PowerUp{
		Cell:      cell,
		Kind:      pm.rollKind(),
		SpawnedAt: now,
		Lifetime:  pm.cfg.Lifetime,
	}
	pm.field = append(pm.field, p)
	return p, true
}

// rollKind selects a power-up kind based on configured weights.
func (pm *PowerUpManager) rollKind() PowerUpKind {
	w := pm.cfg.Weights
	total := w.Total()
	if total <= 0 {
		return PowerUpSpeedBoost
	}

	weights := [powerUpKindCount]int{
		PowerUpSpeedBoost:    w.SpeedBoost,
		PowerUpSlowDown:      w.SlowDown,
		PowerUpDoublePoints:  w.DoublePoints,
		PowerUpInvincibility: w.Invincibility,
	}

	roll := pm.rng.Intn(total)
	cumulative := 0
	for kind, weight := range weights {
		cumulative += weight
		if roll < cumulative {
			return PowerUpKind(kind)
		}
	}
	return PowerUpSpeedBoost
}

// Expire removes power-ups whose lifetime has elapsed and returns them.
func (pm *PowerUpManager) Expire(now time.Duration) []PowerUp {
	var expired []PowerUp
	kept := pm.field[:0]
	for _, p := range pm.field {
		if p.Expired(now) {
			expired = append(expired, p)
		} else {
			kept = append(kept, p)
		}
	}
	pm.field = kept
	return expired
}

// At returns the power-up on c, if any.
func (pm *PowerUpManager) At(c core.Cell) (PowerUp, bool) {
	for _, p := range pm.field {
		if p.Cell == c {
			return p, true
		}
	}
	return PowerUp{}, false
}

// Remove takes the power-up on c off the field.
func (pm *PowerUpManager) Remove(c core.Cell) {
	for i, p := range pm.field {
		if p.Cell == c {
			pm.field = append(pm.field[:i], pm.field[i+1:]...)
			return
		}
	}
}

// RemoveWhere drops every power-up whose cell is in cells.
func (pm *PowerUpManager) RemoveWhere(cells core.CellSet) {
	kept := pm.field[:0]
	for _, p := range pm.field {
		if !cells.Has(p.Cell) {
			kept = append(kept, p)
		}
	}
	pm.field = kept
}

// OnConsume attaches the power-up's effect to s. Consuming a kind that is
// already active restarts that kind's timer and leaves other effects alone.
func (pm *PowerUpManager) OnConsume(s *Snake, p PowerUp) ActiveEffect {
	effect := ActiveEffect{Kind: p.Kind, Remaining: pm.cfg.EffectDuration}
	s.Effects = applyEffect(s.Effects, effect)
	return effect
}

// applyEffect returns effects with e added or its kind refreshed.
func applyEffect(effects []ActiveEffect, e ActiveEffect) []ActiveEffect {
	out := make([]ActiveEffect, 0, len(effects)+1)
	replaced := false
	for _, cur := range effects {
		if cur.Kind == e.Kind {
			out = append(out, e)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, e)
	}
	return out
}

// TickEffects returns a new slice with every effect's remaining time
// reduced by dt and expired effects dropped. The input is not modified.
func TickEffects(effects []ActiveEffect, dt time.Duration) []ActiveEffect {
	out := make([]ActiveEffect, 0, len(effects))
	for _, e := range effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			out = append(out, e)
		}
	}
	return out
}

// randomFreeCell picks a uniformly random in-bounds cell not in blocked.
func randomFreeCell(g core.Grid, blocked core.CellSet, rng Rand) (core.Cell, bool) {
	free := make([]core.Cell, 0, max(0, g.Size()-len(blocked)))
	for i := 0; i < g.Size(); i++ {
		c := g.At(i)
		if !blocked.Has(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}
