package snake

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// maxMovesPerFrame bounds how many catch-up moves one frame may resolve.
const maxMovesPerFrame = 4

// Step advances the game by one platform frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case PhaseMenu:
		return core.StepResult{State: g.State()}
	case PhaseGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if g.phase != PhasePlaying || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.Steer(in.Direction())
	g.now += g.frame
	g.tick++
	g.advanceDue()

	return core.StepResult{State: g.State()}
}

// advanceDue resolves every move that has come due by now. Snakes due in
// the same pass are resolved together.
func (g *Game) advanceDue() {
	for i := 0; i < maxMovesPerFrame; i++ {
		playerDue := g.now >= g.player.NextDue
		aiDue := g.ai != nil && g.ai.Alive && g.now >= g.ai.NextDue
		if !playerDue && !aiDue {
			return
		}

		g.resolve(playerDue, aiDue)

		if playerDue {
			g.player.NextDue += g.effectiveInterval(g.player)
		}
		if aiDue && g.ai.Alive {
			g.ai.NextDue += g.effectiveInterval(g.ai)
		}
		if g.phase != PhasePlaying {
			return
		}
	}

	// Still behind after the cap: drop the backlog instead of spiralling.
	if g.player.NextDue < g.now {
		g.player.NextDue = g.now + g.effectiveInterval(g.player)
	}
	if g.ai != nil && g.ai.NextDue < g.now {
		g.ai.NextDue = g.now + g.effectiveInterval(g.ai)
	}
}

// effectiveInterval is the snake's base interval with speed effects applied.
func (g *Game) effectiveInterval(s *Snake) time.Duration {
	return s.Interval(g.cfg.Speed.SpeedBoostFactor, g.cfg.Speed.SlowDownFactor)
}

// restart begins a new round with a seed drawn from the current one, so a
// seeded session replays the same sequence of rounds.
func (g *Game) restart() {
	rc := g.runtime
	rc.Seed = g.rng.Int63()
	g.Reset(rc)
}
