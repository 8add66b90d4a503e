package snake

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// testConfig returns a 20x20 configuration with random spawns and speed-up
// turned off so tests can place everything by hand.
func testConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width, cfg.Grid.Height = 20, 20
	cfg.PowerUps.Enabled = false
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(mode Mode, cfg config.SnakeConfig) *Game {
	g := NewWithConfig(mode, cfg)
	g.Reset(core.RuntimeConfig{Seed: 1, TickRate: 30})
	g.obstacles = make(core.CellSet)
	return g
}

func placePlayer(g *Game, dir core.Direction, body ...core.Cell) {
	g.player.Body = append([]core.Cell(nil), body...)
	g.player.Dir = dir
}

type fakeRecorder struct {
	calls  int
	mode   string
	score  int
	stored int
}

func (r *fakeRecorder) RecordHighScore(mode string, score int) (int, error) {
	r.calls++
	r.mode, r.score = mode, score
	r.stored = max(r.stored, score)
	return r.stored, nil
}

func (r *fakeRecorder) HighScore(string) int { return r.stored }

func TestEatFoodGrows(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(5, 5))
	g.food = core.C(6, 5)

	res := g.Tick(core.DirNone)

	if res.Outcome != OutcomeContinue {
		t.Fatalf("outcome = %v, want continue", res.Outcome)
	}
	want := []core.Cell{core.C(6, 5), core.C(5, 5)}
	if !reflect.DeepEqual(g.player.Body, want) {
		t.Errorf("body = %v, want %v", g.player.Body, want)
	}
	if g.player.Score != 10 {
		t.Errorf("score = %d, want 10", g.player.Score)
	}
	if g.food == core.C(6, 5) || g.player.Occupies(g.food) || !g.grid.InBounds(g.food) {
		t.Errorf("food not relocated to a free cell: %v", g.food)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(5, 5), core.C(4, 5))
	g.food = core.C(15, 15)

	g.Tick(core.DirLeft)

	if g.player.Dir != core.DirRight {
		t.Errorf("direction = %v, want right", g.player.Dir)
	}
	if g.player.Head() != core.C(6, 5) {
		t.Errorf("head = %v, want (6,5)", g.player.Head())
	}

	g.Tick(core.DirUp)
	if g.player.Head() != core.C(6, 4) {
		t.Errorf("head = %v, want (6,4) after turning up", g.player.Head())
	}
}

func TestCollisions(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		dir   core.Direction
		body  []core.Cell
		steer core.Direction
		obs   []core.Cell
		want  Reason
	}{
		{
			name: "wall",
			mode: ModeClassic,
			dir:  core.DirRight,
			body: []core.Cell{core.C(19, 5)},
			want: ReasonWall,
		},
		{
			name:  "self",
			mode:  ModeClassic,
			dir:   core.DirLeft,
			body:  []core.Cell{core.C(5, 5), core.C(6, 5), core.C(6, 6), core.C(5, 6), core.C(4, 6)},
			steer: core.DirDown,
			want:  ReasonSelf,
		},
		{
			name: "obstacle",
			mode: ModeObstacle,
			dir:  core.DirRight,
			body: []core.Cell{core.C(5, 5)},
			obs:  []core.Cell{core.C(6, 5)},
			want: ReasonObstacle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(tt.mode, testConfig())
			placePlayer(g, tt.dir, tt.body...)
			g.obstacles = core.NewCellSet(tt.obs...)
			g.food = core.C(15, 15)

			res := g.Tick(tt.steer)

			if res.Outcome != OutcomeGameOver || res.Reason != tt.want {
				t.Errorf("result = %+v, want game over by %v", res, tt.want)
			}
			if g.Phase() != PhaseGameOver {
				t.Errorf("phase = %v, want game_over", g.Phase())
			}
		})
	}
}

func TestInvincibility(t *testing.T) {
	shield := []ActiveEffect{{Kind: PowerUpInvincibility, Remaining: 5 * time.Second}}

	t.Run("obstacle", func(t *testing.T) {
		g := newTestGame(ModeObstacle, testConfig())
		placePlayer(g, core.DirRight, core.C(5, 5))
		g.player.Effects = shield
		g.obstacles = core.NewCellSet(core.C(6, 5))
		g.food = core.C(15, 15)

		res := g.Tick(core.DirNone)
		if res.Outcome != OutcomeContinue {
			t.Errorf("outcome = %v, want continue", res.Outcome)
		}
		if g.player.Head() != core.C(6, 5) {
			t.Errorf("head = %v, want (6,5)", g.player.Head())
		}
	})

	t.Run("wall wraps", func(t *testing.T) {
		g := newTestGame(ModeClassic, testConfig())
		placePlayer(g, core.DirRight, core.C(19, 5))
		g.player.Effects = shield
		g.food = core.C(15, 15)

		res := g.Tick(core.DirNone)
		if res.Outcome != OutcomeContinue {
			t.Errorf("outcome = %v, want continue", res.Outcome)
		}
		if g.player.Head() != core.C(0, 5) {
			t.Errorf("head = %v, want wrapped to (0,5)", g.player.Head())
		}
	})
}

func TestOpponentCollision(t *testing.T) {
	g := newTestGame(ModeAIBattle, testConfig())
	placePlayer(g, core.DirRight, core.C(9, 11))
	g.ai.Body = []core.Cell{core.C(10, 10), core.C(10, 11), core.C(10, 12)}
	g.ai.Dir = core.DirUp
	g.food = core.C(10, 0)

	res := g.Tick(core.DirNone)

	if res.Outcome != OutcomeGameOver || res.Reason != ReasonOpponent {
		t.Fatalf("result = %+v, want game over by opponent", res)
	}
	if g.ai.Head() != core.C(10, 9) {
		t.Errorf("AI head = %v, want (10,9)", g.ai.Head())
	}
}

func TestHeadToHeadAndShields(t *testing.T) {
	shield := []ActiveEffect{{Kind: PowerUpInvincibility, Remaining: 5 * time.Second}}

	tests := []struct {
		name        string
		mode        Mode
		setup       func(g *Game)
		playerGuard bool
		aiGuard     bool
		steer       core.Direction
		wantOutcome Outcome
		wantReason  Reason
		wantAIDied  bool
		wantHead    core.Cell
	}{
		{
			name:        "head on, no shields",
			mode:        ModeAIBattle,
			setup:       headOn,
			wantOutcome: OutcomeGameOver,
			wantReason:  ReasonOpponent,
			wantAIDied:  true,
			wantHead:    core.C(10, 10),
		},
		{
			name:        "head on, player shielded",
			mode:        ModeAIBattle,
			setup:       headOn,
			playerGuard: true,
			wantOutcome: OutcomeContinue,
			wantAIDied:  true,
			wantHead:    core.C(10, 10),
		},
		{
			name:        "head on, AI shielded",
			mode:        ModeAIBattle,
			setup:       headOn,
			aiGuard:     true,
			wantOutcome: OutcomeGameOver,
			wantReason:  ReasonOpponent,
			wantHead:    core.C(10, 10),
		},
		{
			name: "shielded player enters AI body",
			mode: ModeAIBattle,
			setup: func(g *Game) {
				placePlayer(g, core.DirRight, core.C(9, 11))
				g.ai.Body = []core.Cell{core.C(10, 10), core.C(10, 11), core.C(10, 12)}
				g.ai.Dir = core.DirUp
				g.food = core.C(10, 0)
			},
			playerGuard: true,
			wantOutcome: OutcomeContinue,
			wantHead:    core.C(10, 11),
		},
		{
			name: "shielded player crosses own body",
			mode: ModeClassic,
			setup: func(g *Game) {
				placePlayer(g, core.DirLeft, core.C(5, 5), core.C(6, 5), core.C(6, 6), core.C(5, 6), core.C(4, 6))
				g.food = core.C(15, 15)
			},
			playerGuard: true,
			steer:       core.DirDown,
			wantOutcome: OutcomeContinue,
			wantHead:    core.C(5, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(tt.mode, testConfig())
			tt.setup(g)
			if tt.playerGuard {
				g.player.Effects = append([]ActiveEffect(nil), shield...)
			}
			if tt.aiGuard {
				g.ai.Effects = append([]ActiveEffect(nil), shield...)
			}

			res := g.Tick(tt.steer)

			if res.Outcome != tt.wantOutcome || res.Reason != tt.wantReason || res.AIDied != tt.wantAIDied {
				t.Errorf("result = %+v, want outcome %v reason %q AIDied %v", res, tt.wantOutcome, tt.wantReason, tt.wantAIDied)
			}
			if g.player.Head() != tt.wantHead {
				t.Errorf("player head = %v, want %v", g.player.Head(), tt.wantHead)
			}
		})
	}
}

// headOn points both heads at (10,10). The food sits there so the AI
// heads straight for it.
func headOn(g *Game) {
	placePlayer(g, core.DirRight, core.C(9, 10))
	g.ai.Body = []core.Cell{core.C(11, 10), core.C(12, 10)}
	g.ai.Dir = core.DirLeft
	g.food = core.C(10, 10)
}

func TestAIDeathContinuesRound(t *testing.T) {
	g := newTestGame(ModeAIBattle, testConfig())
	placePlayer(g, core.DirRight, core.C(10, 10))
	g.ai.Body = []core.Cell{core.C(0, 0)}
	g.ai.Dir = core.DirLeft
	g.obstacles = core.NewCellSet(core.C(1, 0), core.C(0, 1))
	g.food = core.C(15, 15)

	res := g.Tick(core.DirNone)

	if !res.AIDied {
		t.Fatal("expected the boxed-in AI to die")
	}
	if res.Outcome != OutcomeContinue || g.Phase() != PhasePlaying {
		t.Errorf("round ended: %+v, phase %v", res, g.Phase())
	}

	aiHead := g.ai.Head()
	g.Tick(core.DirNone)
	if g.ai.Head() != aiHead {
		t.Error("dead AI kept moving")
	}
	if g.player.Head() != core.C(12, 10) {
		t.Errorf("player head = %v, want (12,10)", g.player.Head())
	}
}

func TestAIEatsFood(t *testing.T) {
	g := newTestGame(ModeAIBattle, testConfig())
	placePlayer(g, core.DirRight, core.C(10, 15))
	g.ai.Body = []core.Cell{core.C(2, 2)}
	g.food = core.C(2, 1)

	g.Tick(core.DirNone)

	if g.ai.Score != 10 || g.ai.Len() != 2 {
		t.Errorf("AI score %d len %d, want 10 and 2", g.ai.Score, g.ai.Len())
	}
	if g.player.Score != 0 {
		t.Errorf("player score = %d, want 0", g.player.Score)
	}
}

func TestLevelUp(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	g := newTestGame(ModeObstacle, cfg)
	placePlayer(g, core.DirRight, core.C(5, 5))
	g.player.Score = 40
	g.food = core.C(6, 5)
	before := g.player.BaseInterval

	res := g.Tick(core.DirNone)

	if res.Outcome != OutcomeLevelUp || res.Level != 2 || g.Level() != 2 {
		t.Fatalf("result = %+v, level %d; want level up to 2", res, g.Level())
	}
	if g.player.BaseInterval >= before {
		t.Errorf("interval %v did not shrink from %v", g.player.BaseInterval, before)
	}
	if want := g.obstacleMg.Count(2, g.grid); len(g.obstacles) != want {
		t.Errorf("obstacles = %d, want %d", len(g.obstacles), want)
	}
	for _, c := range append(g.player.Body, cellsAhead(g.grid, g.player, cfg.Obstacles.SafeAhead)...) {
		if g.obstacles.Has(c) {
			t.Errorf("obstacle spawned on or ahead of the snake at %v", c)
		}
	}
	if g.obstacles.Has(g.food) {
		t.Error("food under an obstacle")
	}
}

func TestLevelThresholdPerMode(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.LevelThresholds = config.LevelThresholds{Classic: 50, AIBattle: 40, Obstacle: 30}

	tests := []struct {
		mode      Mode
		start     int
		wantLevel int
	}{
		{ModeClassic, 20, 1},
		{ModeAIBattle, 20, 1},
		{ModeObstacle, 20, 2},
		{ModeClassic, 30, 1},
		{ModeAIBattle, 30, 2},
		{ModeClassic, 40, 2},
	}
	for _, tt := range tests {
		g := newTestGame(tt.mode, cfg)
		placePlayer(g, core.DirRight, core.C(12, 12))
		g.player.Score = tt.start
		g.food = core.C(13, 12)

		res := g.Tick(core.DirNone)

		if g.Level() != tt.wantLevel {
			t.Errorf("%s at %d points: level %d, want %d", tt.mode, g.player.Score, g.Level(), tt.wantLevel)
		}
		if leveled := res.Outcome == OutcomeLevelUp; leveled != (tt.wantLevel > 1) {
			t.Errorf("%s at %d points: outcome %v", tt.mode, g.player.Score, res.Outcome)
		}
	}
}

func TestMovesProgressionSpeedsUpWithoutEating(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Progression = config.ProgressionConfig{Type: config.ProgressMoves, MaxAt: 10}
	g := newTestGame(ModeClassic, cfg)
	placePlayer(g, core.DirRight, core.C(2, 5))
	g.food = core.C(0, 0)
	before := g.player.BaseInterval

	for i := 0; i < 5; i++ {
		g.Tick(core.DirNone)
	}

	if g.player.Score != 0 {
		t.Fatalf("score = %d, want 0", g.player.Score)
	}
	if g.player.BaseInterval >= before {
		t.Errorf("interval %v did not shrink from %v after moving", g.player.BaseInterval, before)
	}
}

func TestPowerUpStartsWithFullDuration(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(ModeClassic, cfg)
	placePlayer(g, core.DirRight, core.C(5, 5))
	g.food = core.C(15, 15)
	g.player.Effects = []ActiveEffect{{Kind: PowerUpSlowDown, Remaining: time.Second}}
	g.powerups.field = []PowerUp{{Cell: core.C(6, 5), Kind: PowerUpInvincibility, Lifetime: 10 * time.Second}}
	start := g.now

	g.Tick(core.DirNone)

	elapsed := g.now - start
	for _, e := range g.player.Effects {
		switch e.Kind {
		case PowerUpInvincibility:
			if e.Remaining != cfg.PowerUps.EffectDuration {
				t.Errorf("new effect has %v left, want %v", e.Remaining, cfg.PowerUps.EffectDuration)
			}
		case PowerUpSlowDown:
			if want := time.Second - elapsed; e.Remaining != want {
				t.Errorf("held effect has %v left, want %v", e.Remaining, want)
			}
		}
	}
	if !g.player.Invincible() {
		t.Error("power-up not consumed")
	}
}

func TestParkedFoodReturns(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(5, 5))
	g.food = core.C(-1, -1)

	g.Tick(core.DirNone)

	if !g.grid.InBounds(g.food) || g.player.Occupies(g.food) {
		t.Errorf("food = %v, want a free board cell", g.food)
	}
}

func TestDoublePointsPowerUp(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(5, 5))
	g.powerups.field = []PowerUp{{Cell: core.C(6, 5), Kind: PowerUpDoublePoints, Lifetime: 10 * time.Second}}
	g.food = core.C(7, 5)

	g.Tick(core.DirNone)
	if !g.player.HasEffect(PowerUpDoublePoints) {
		t.Fatal("power-up not consumed")
	}
	if _, ok := g.powerups.At(core.C(6, 5)); ok {
		t.Error("consumed power-up still on the field")
	}

	g.Tick(core.DirNone)
	if g.player.Score != 20 {
		t.Errorf("score = %d, want 20 under double points", g.player.Score)
	}
}

func TestEffectsExpireWithTime(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(2, 5))
	g.food = core.C(15, 15)
	g.player.Effects = []ActiveEffect{{Kind: PowerUpSpeedBoost, Remaining: 100 * time.Millisecond}}

	// 62.5ms under the boost.
	g.Tick(core.DirNone)
	if !g.player.HasEffect(PowerUpSpeedBoost) {
		t.Fatal("boost expired too early")
	}
	g.Tick(core.DirNone)
	if g.player.HasEffect(PowerUpSpeedBoost) {
		t.Error("boost outlived its duration")
	}
}

func TestSchedulerMovesOnInterval(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	g.food = core.C(0, 0)
	start := g.player.Head()
	in := core.NewInputFrame()

	// 125ms interval at 30 FPS: the first move lands on the fourth frame.
	for i := 0; i < 3; i++ {
		g.Step(in)
	}
	if g.player.Head() != start {
		t.Fatalf("moved early to %v", g.player.Head())
	}
	g.Step(in)
	if g.player.Head() != start.Step(core.DirRight) {
		t.Errorf("head = %v, want %v", g.player.Head(), start.Step(core.DirRight))
	}

	// 31 frames cover a full second: eight moves in total.
	for i := 4; i < 31; i++ {
		g.Step(in)
	}
	if got := g.player.Head().X - start.X; got != 8 {
		t.Errorf("moved %d cells in one second, want 8", got)
	}
}

func TestSpeedBoostMovesFaster(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(1, 5))
	g.food = core.C(0, 0)
	g.player.Effects = []ActiveEffect{{Kind: PowerUpSpeedBoost, Remaining: time.Hour}}
	g.player.NextDue = g.effectiveInterval(g.player)

	in := core.NewInputFrame()
	for i := 0; i < 31; i++ {
		g.Step(in)
	}
	if got := g.player.Head().X - 1; got != 16 {
		t.Errorf("moved %d cells in one second with boost, want 16", got)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	g.food = core.C(0, 0)
	in := core.NewInputFrame()
	for i := 0; i < 5; i++ {
		g.Step(in)
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if g.Phase() != PhasePaused || !g.State().Paused {
		t.Fatalf("phase = %v, want paused", g.Phase())
	}

	snap := g.Snapshot()
	for i := 0; i < 100; i++ {
		g.Step(in)
	}
	after := g.Snapshot()
	if after.Now != snap.Now || !reflect.DeepEqual(after.Player, snap.Player) {
		t.Error("game advanced while paused")
	}

	g.Step(pause)
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing after resume", g.Phase())
	}
}

func TestRecorderCalledOnce(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	rec := &fakeRecorder{stored: 30}
	g.SetRecorder(rec)
	placePlayer(g, core.DirRight, core.C(19, 5))
	g.player.Score = 70

	g.Tick(core.DirNone)
	g.Tick(core.DirNone)
	g.Step(core.NewInputFrame())

	if rec.calls != 1 {
		t.Fatalf("recorder called %d times, want 1", rec.calls)
	}
	if rec.mode != "classic" || rec.score != 70 {
		t.Errorf("recorded %s=%d, want classic=70", rec.mode, rec.score)
	}
	if g.HighScore() != 70 {
		t.Errorf("HighScore() = %d, want 70", g.HighScore())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(ModeClassic, testConfig())
	placePlayer(g, core.DirRight, core.C(19, 5))
	g.player.Score = 30
	g.Tick(core.DirNone)

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase())
	}
	if g.State().Score != 0 || g.player.Len() != 1 {
		t.Error("restart did not reset the snake")
	}
	if g.HighScore() != 30 {
		t.Errorf("best score lost on restart: %d", g.HighScore())
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	rc := core.RuntimeConfig{Seed: 12345, TickRate: 30}

	g1 := NewWithConfig(ModeAIBattle, cfg)
	g2 := NewWithConfig(ModeAIBattle, cfg)
	g1.Reset(rc)
	g2.Reset(rc)

	moves := []core.Action{core.ActionDown, core.ActionLeft, core.ActionUp, core.ActionRight}
	in := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		in.Clear()
		if i%25 == 0 {
			in.Set(moves[(i/25)%len(moves)])
		}
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Error("same seed and inputs produced different games")
	}
}

// Length equals one plus food eaten, and score never drops.
func TestLengthAndScoreInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := NewWithConfig(ModeClassic, testConfig())
		g.Reset(core.RuntimeConfig{Seed: seed, TickRate: 30})
		rng := rand.New(rand.NewSource(seed))

		prevScore := 0
		for i := 0; i < 400 && g.Phase() == PhasePlaying; i++ {
			g.Tick(core.Directions[rng.Intn(4)])
			if g.Phase() != PhasePlaying {
				break
			}
			if g.player.Len() != 1+g.player.Score/10 {
				t.Fatalf("seed %d tick %d: len %d with score %d", seed, i, g.player.Len(), g.player.Score)
			}
			if g.player.Score < prevScore {
				t.Fatalf("seed %d: score dropped from %d to %d", seed, prevScore, g.player.Score)
			}
			prevScore = g.player.Score
		}
	}
}

func TestWinner(t *testing.T) {
	g := newTestGame(ModeAIBattle, testConfig())
	tests := []struct {
		player, ai int
		want       string
	}{
		{20, 10, "You"},
		{10, 20, "AI"},
		{10, 10, "Draw"},
	}
	for _, tt := range tests {
		g.player.Score, g.ai.Score = tt.player, tt.ai
		if got := g.Winner(); got != tt.want {
			t.Errorf("Winner() with %d vs %d = %q, want %q", tt.player, tt.ai, got, tt.want)
		}
	}

	if got := newTestGame(ModeClassic, testConfig()).Winner(); got != "" {
		t.Errorf("classic Winner() = %q, want empty", got)
	}
}

func TestStartingLayout(t *testing.T) {
	g := newTestGame(ModeAIBattle, testConfig())
	if g.player.Head() != core.C(10, 10) || g.ai.Head() != core.C(5, 5) {
		t.Errorf("player at %v, AI at %v", g.player.Head(), g.ai.Head())
	}
	if g.player.Dir != core.DirRight || g.ai.Dir != core.DirRight {
		t.Error("snakes should start heading right")
	}

	cfg := testConfig()
	g = NewWithConfig(ModeObstacle, cfg)
	g.Reset(core.RuntimeConfig{Seed: 4})
	if len(g.obstacles) != g.obstacleMg.Count(1, g.grid) {
		t.Errorf("obstacles = %d, want %d", len(g.obstacles), g.obstacleMg.Count(1, g.grid))
	}
	if g.obstacles.Has(g.food) || g.obstacles.Has(g.player.Head()) {
		t.Error("obstacle overlaps food or snake")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"classic", "ai_battle", "obstacle"} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
		game, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if game.ID() != id {
			t.Errorf("ID() = %q, want %q", game.ID(), id)
		}
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewWithConfig(ModeClassic, testConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 10, ScreenH: 5})

	res := g.Tick(core.DirNone)
	if res.Outcome != OutcomeContinue {
		t.Errorf("tick on a tiny screen = %+v", res)
	}

	screen := core.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Errorf("expected a too-small message, got:\n%s", screen.String())
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(ModeAIBattle, testConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 30})

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "AI: 0", "AI Battle", "Level: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.ContainsRune(out, glyphFood) {
		t.Error("render missing food")
	}

	placePlayer(g, core.DirRight, core.C(19, 5))
	g.player.Score = 20
	g.Tick(core.DirNone)
	screen.Clear()
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "You Win!") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
}
