// Package snake implements the arena's snake modes: classic, AI battle
// and obstacle challenge. The simulation is pure and tick driven; the
// platform feeds it frames and draws its screen buffer.
package snake

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// Mode represents the game mode. Its value doubles as the high-score key.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeAIBattle Mode = "ai_battle"
	ModeObstacle Mode = "obstacle"
)

// Phase is the lifecycle state of a game.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome is the result kind of a tick.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeLevelUp
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeLevelUp:
		return "level_up"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Reason is the collision that ended a snake.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonWall
	ReasonSelf
	ReasonObstacle
	ReasonOpponent
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonWall:
		return "wall"
	case ReasonSelf:
		return "self"
	case ReasonObstacle:
		return "obstacle"
	case ReasonOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// TickResult reports what happened during one resolution step.
type TickResult struct {
	Outcome Outcome
	Reason  Reason // Set when Outcome is OutcomeGameOver
	AIDied  bool   // The AI snake died this tick; play continues
	Level   int
}

// Game implements one arena mode.
type Game struct {
	mode   Mode
	cfg    config.SnakeConfig
	grid   core.Grid
	rng    *rand.Rand
	logger *log.Logger

	recorder   core.HighScoreRecorder
	difficulty *config.DifficultyManager
	powerups   *PowerUpManager
	obstacleMg *ObstacleManager

	phase     Phase
	player    *Snake
	ai        *Snake
	food      core.Cell
	obstacles core.CellSet
	level     int
	moves     int // Player moves this round, for the moves progression
	nextDir   core.Direction

	// Simulation clock. It only advances while playing.
	now          time.Duration
	frame        time.Duration
	lastEffectAt time.Duration
	tick         uint64

	lastResult  TickResult
	highScore   int
	aiFallbacks int

	runtime  core.RuntimeConfig
	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level settings applied by the CLI before games are created.
var (
	activeConfig = config.DefaultSnakeConfig()
	activeLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by newly created games.
func SetConfig(cfg config.SnakeConfig) {
	activeConfig = cfg
}

// SetLogger sets the logger used by newly created games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	activeLogger = l
}

// New creates a game in the given mode using the active configuration.
func New(mode Mode) *Game {
	return NewWithConfig(mode, activeConfig)
}

// NewWithConfig creates a game in the given mode with an explicit configuration.
// The game starts in the menu phase; Reset begins play.
func NewWithConfig(mode Mode, cfg config.SnakeConfig) *Game {
	return &Game{
		mode:      mode,
		cfg:       cfg,
		logger:    activeLogger.With("mode", string(mode)),
		phase:     PhaseMenu,
		obstacles: make(core.CellSet),
		food:      core.C(-1, -1),
		level:     1,
	}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register(string(ModeAIBattle), func() registry.Game {
		return New(ModeAIBattle)
	})
	registry.Register(string(ModeObstacle), func() registry.Game {
		return New(ModeObstacle)
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeAIBattle:
		return "AI Battle"
	case ModeObstacle:
		return "Obstacle Challenge"
	default:
		return "Classic"
	}
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	switch g.mode {
	case ModeAIBattle:
		return "Race a pathfinding AI snake for food"
	case ModeObstacle:
		return "Dodge walls that multiply every level"
	default:
		return "Eat, grow, and avoid yourself"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetRecorder sets the store that receives the final score of each round.
func (g *Game) SetRecorder(r core.HighScoreRecorder) {
	g.recorder = r
	if r != nil {
		g.highScore = max(g.highScore, r.HighScore(string(g.mode)))
	}
}

// Reset starts a new round.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(tickRate)

	g.grid = g.fitGrid()
	g.tooSmall = g.grid.W < minGridW || g.grid.H < minGridH

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.powerups = NewPowerUpManager(g.cfg.PowerUps, g.grid, g.rng)
	g.obstacleMg = NewObstacleManager(g.cfg.Obstacles, g.rng)

	g.now = 0
	g.lastEffectAt = 0
	g.tick = 0
	g.level = 1
	g.moves = 0
	g.lastResult = TickResult{Outcome: OutcomeContinue, Level: 1}
	g.aiFallbacks = 0
	g.phase = PhasePlaying
	if g.recorder != nil {
		g.highScore = max(g.highScore, g.recorder.HighScore(string(g.mode)))
	}

	g.player, g.ai = nil, nil
	g.player = NewSnake(core.C(g.grid.W/2, g.grid.H/2), core.DirRight, g.interval(g.cfg.Speed.MoveInterval))
	g.player.NextDue = g.player.BaseInterval
	g.nextDir = core.DirNone

	if g.mode == ModeAIBattle {
		g.ai = NewSnake(core.C(g.grid.W/4, g.grid.H/4), core.DirRight, g.interval(g.cfg.Speed.AIMoveInterval))
		g.ai.IsAI = true
		g.ai.NextDue = g.ai.BaseInterval
	}

	g.obstacles = make(core.CellSet)
	if g.mode == ModeObstacle {
		g.obstacles = g.obstacleMg.Generate(g.level, g.grid, g.obstacleExclusions())
	}

	g.powerups.Reset(g.now)
	g.relocateFood()

	g.logger.Debug("round started", "grid", g.grid, "seed", rc.Seed)
}

// Board size limits when fitting the grid to the terminal.
const (
	minGridW  = 8
	minGridH  = 6
	cellWidth = 2 // Terminal columns per grid cell
	hudHeight = 2
)

// fitGrid shrinks the configured grid to what the screen can show.
// A zero screen size means no limit.
func (g *Game) fitGrid() core.Grid {
	w, h := g.cfg.Grid.Width, g.cfg.Grid.Height
	if g.screenW > 0 {
		w = min(w, (g.screenW-2)/cellWidth)
	}
	if g.screenH > 0 {
		h = min(h, g.screenH-hudHeight-2)
	}
	return core.NewGrid(max(w, 0), max(h, 0))
}

// interval applies the difficulty curve to a base interval.
func (g *Game) interval(base time.Duration) time.Duration {
	score := 0
	if g.player != nil {
		score = g.player.Score
	}
	return g.difficulty.Interval(base, g.cfg.Speed.MinInterval, score, g.moves)
}

// Steer buffers the player's intended direction for the next move.
// A reversal against the current heading is ignored.
func (g *Game) Steer(d core.Direction) {
	if d == core.DirNone || g.player == nil {
		return
	}
	if d == g.player.Dir.Opposite() {
		return
	}
	g.nextDir = d
}

// Pause freezes the simulation clock.
func (g *Game) Pause() {
	if g.phase == PhasePlaying {
		g.phase = PhasePaused
	}
}

// Resume restarts the simulation clock.
func (g *Game) Resume() {
	if g.phase == PhasePaused {
		g.phase = PhasePlaying
	}
}

// TogglePause switches between playing and paused.
func (g *Game) TogglePause() {
	if g.phase == PhasePaused {
		g.Resume()
		return
	}
	g.Pause()
}

// Quit abandons the round and returns to the menu phase.
func (g *Game) Quit() {
	g.phase = PhaseMenu
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Level returns the current level, starting at 1.
func (g *Game) Level() int {
	return g.level
}

// HighScore returns the best score known for this mode.
func (g *Game) HighScore() int {
	best := g.highScore
	if g.player != nil {
		best = max(best, g.player.Score)
	}
	return best
}

// Winner names the leader of an AI battle: "You", "AI" or "Draw".
// Other modes return an empty string.
func (g *Game) Winner() string {
	if g.mode != ModeAIBattle || g.player == nil || g.ai == nil {
		return ""
	}
	switch {
	case g.player.Score > g.ai.Score:
		return "You"
	case g.ai.Score > g.player.Score:
		return "AI"
	default:
		return "Draw"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.player != nil {
		score = g.player.Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
		Level:    g.level,
	}
}

// Tick advances every live snake by exactly one cell, ignoring per-snake
// timers. The clock moves forward by the player's current interval.
func (g *Game) Tick(human core.Direction) TickResult {
	if g.phase != PhasePlaying || g.tooSmall {
		return g.lastResult
	}
	g.Steer(human)
	g.now += g.effectiveInterval(g.player)
	g.tick++

	aiMoves := g.ai != nil && g.ai.Alive
	res := g.resolve(true, aiMoves)

	g.player.NextDue = g.now + g.effectiveInterval(g.player)
	if aiMoves {
		g.ai.NextDue = g.now + g.effectiveInterval(g.ai)
	}
	return res
}

// resolve performs one resolution step for the snakes that move now.
// The player is always processed before the AI.
func (g *Game) resolve(playerMoves, aiMoves bool) TickResult {
	res := TickResult{Outcome: OutcomeContinue, Level: g.level}

	var movers []*Snake

	// 1. Apply the buffered player direction, rejecting reversals.
	if playerMoves {
		if g.nextDir != core.DirNone && g.nextDir != g.player.Dir.Opposite() {
			g.player.Dir = g.nextDir
		}
		g.nextDir = core.DirNone
		movers = append(movers, g.player)
		g.moves++
		if g.difficulty.TracksMoves() {
			g.retime()
		}
	}

	// 2. The AI picks its direction.
	if aiMoves && g.ai != nil && g.ai.Alive {
		dir, fellBack := decideMove(g.grid, g.ai, g.food, g.obstacles, g.player)
		if fellBack {
			g.aiFallbacks++
			g.logger.Debug("ai has no path to food", "head", g.ai.Head(), "food", g.food, "dir", dir)
		}
		g.ai.Dir = dir
		movers = append(movers, g.ai)
	}

	// 3. Move. Eating grows the snake on the same move.
	var eater *Snake
	for _, s := range movers {
		next := s.Head().Step(s.Dir)
		if !g.grid.InBounds(next) && s.Invincible() {
			next = g.grid.Wrap(next)
		}
		if next == g.food && eater == nil {
			s.PendingGrowth++
			eater = s
		}
		s.Advance(next)
	}

	// 4. Collisions.
	reasons := make(map[*Snake]Reason, len(movers))
	for _, s := range movers {
		if r := g.collision(s); r != ReasonNone {
			reasons[s] = r
		}
	}
	for _, s := range movers {
		r, hit := reasons[s]
		if !hit {
			continue
		}
		s.Alive = false
		if s == g.player {
			res.Outcome = OutcomeGameOver
			res.Reason = r
		} else {
			res.AIDied = true
			g.logger.Debug("ai died", "reason", r, "score", s.Score)
		}
	}

	// 5. Food.
	if eater != nil && eater.Alive {
		points := g.cfg.Scoring.FoodPoints
		if eater.HasEffect(PowerUpDoublePoints) {
			points *= 2
		}
		eater.Score += points
		g.relocateFood()

		if eater == g.player {
			g.powerups.RollOnEat(g.now, g.occupied())
			threshold := g.cfg.Scoring.LevelThresholds.For(string(g.mode))
			if lvl := 1 + g.player.Score/threshold; lvl > g.level && res.Outcome != OutcomeGameOver {
				g.levelUp(lvl)
				res.Outcome = OutcomeLevelUp
				res.Level = g.level
			}
		}
	}

	// 6. Power-ups. Effects held since the last step age first, so one
	// picked up now starts with its full duration.
	dt := g.now - g.lastEffectAt
	g.lastEffectAt = g.now
	g.player.Effects = TickEffects(g.player.Effects, dt)
	if g.ai != nil {
		g.ai.Effects = TickEffects(g.ai.Effects, dt)
	}
	for _, s := range movers {
		if !s.Alive {
			continue
		}
		if p, ok := g.powerups.At(s.Head()); ok {
			g.powerups.OnConsume(s, p)
			g.powerups.Remove(p.Cell)
		}
	}

	// 7. Expiry and spawning. Food parked off a full board comes back
	// once a cell frees up.
	g.powerups.Expire(g.now)
	g.powerups.TrySpawn(g.now, g.occupied())
	if !g.grid.InBounds(g.food) {
		g.relocateFood()
	}

	// 8. Finalize.
	if res.Outcome == OutcomeGameOver {
		g.finish(res.Reason)
	}
	g.lastResult = res
	return res
}

// collision returns the first collision for s after it moved.
// Every check is skipped while s is invincible.
func (g *Game) collision(s *Snake) Reason {
	if s.Invincible() {
		return ReasonNone
	}
	head := s.Head()
	switch {
	case !g.grid.InBounds(head):
		return ReasonWall
	case s.HitsOwnBody():
		return ReasonSelf
	case g.obstacles.Has(head):
		return ReasonObstacle
	}
	if other := g.opponentOf(s); other != nil && other.Alive && other.Occupies(head) {
		return ReasonOpponent
	}
	return ReasonNone
}

func (g *Game) opponentOf(s *Snake) *Snake {
	if s == g.player {
		return g.ai
	}
	return g.player
}

// levelUp advances to level, speeding both snakes up and, in the obstacle
// mode, rebuilding the obstacle field.
func (g *Game) levelUp(level int) {
	g.level = level
	g.retime()

	if g.mode == ModeObstacle {
		g.obstacles = g.obstacleMg.Generate(g.level, g.grid, g.obstacleExclusions())
		g.powerups.RemoveWhere(g.obstacles)
	}
	g.logger.Debug("level up", "level", g.level, "interval", g.player.BaseInterval)
}

// retime reapplies the difficulty curve to both snakes' base intervals.
func (g *Game) retime() {
	g.player.BaseInterval = g.interval(g.cfg.Speed.MoveInterval)
	if g.ai != nil {
		g.ai.BaseInterval = g.interval(g.cfg.Speed.AIMoveInterval)
	}
}

// obstacleExclusions are the cells new obstacles must avoid: snake bodies,
// the cells just ahead of each head, food and power-ups.
func (g *Game) obstacleExclusions() core.CellSet {
	ex := make(core.CellSet)
	for _, s := range g.snakes() {
		ex.Add(s.Body...)
		ex.Add(cellsAhead(g.grid, s, g.cfg.Obstacles.SafeAhead)...)
	}
	if g.grid.InBounds(g.food) {
		ex.Add(g.food)
	}
	if g.powerups != nil {
		for _, p := range g.powerups.Active() {
			ex.Add(p.Cell)
		}
	}
	return ex
}

// occupied is every cell that holds something: bodies, obstacles, food.
func (g *Game) occupied() core.CellSet {
	occ := g.obstacles.Union()
	for _, s := range g.snakes() {
		occ.Add(s.Body...)
	}
	occ.Add(g.food)
	return occ
}

// relocateFood moves food to a free cell, or off the board when none is left.
func (g *Game) relocateFood() {
	blocked := g.obstacles.Union(g.powerups.Cells())
	for _, s := range g.snakes() {
		blocked.Add(s.Body...)
	}
	cell, ok := randomFreeCell(g.grid, blocked, g.rng)
	if !ok {
		g.food = core.C(-1, -1)
		return
	}
	g.food = cell
}

// snakes returns the snakes that occupy the board.
func (g *Game) snakes() []*Snake {
	out := []*Snake{g.player}
	if g.ai != nil && g.ai.Alive {
		out = append(out, g.ai)
	}
	return out
}

// finish ends the round and records the player's score.
func (g *Game) finish(reason Reason) {
	g.phase = PhaseGameOver
	score := g.player.Score

	if g.recorder != nil {
		best, err := g.recorder.RecordHighScore(string(g.mode), score)
		if err != nil {
			g.logger.Warn("high score not saved", "err", err)
		}
		g.highScore = max(g.highScore, best)
	}
	g.highScore = max(g.highScore, score)

	g.logger.Info("round over", "score", score, "level", g.level, "reason", reason)
}

// Summary describes the finished (or current) round for score history.
type Summary struct {
	Mode    string
	Score   int
	AIScore int
	Level   int
	Reason  string
}

// Summary returns the round's scores, level and the collision that ended it.
func (g *Game) Summary() Summary {
	s := Summary{Mode: string(g.mode), Level: g.level, Reason: g.lastResult.Reason.String()}
	if g.player != nil {
		s.Score = g.player.Score
	}
	if g.ai != nil {
		s.AIScore = g.ai.Score
	}
	return s
}
