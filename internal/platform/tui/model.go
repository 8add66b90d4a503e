package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// Services bundles the persistence and logging a session uses.
// Any field may be nil.
type Services struct {
	Store  *storage.Store      // Score history
	Scores *storage.HighScores // Per-mode best scores
	Logger *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool // The current game over has been written to history
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, services Services, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if rec, ok := game.(registry.Recordable); ok && services.Scores != nil {
		rec.SetRecorder(services.Scores)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:   services,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize restarts the round at the new size until the player has scored.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver && m.gameState.Score == 0 {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick advances the game by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.saveRun()
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun appends the finished round to the history store.
func (m *Model) saveRun() {
	if m.services.Store == nil {
		return
	}

	run := storage.Run{
		Mode:  m.game.ID(),
		Score: m.gameState.Score,
		Level: m.gameState.Level,
	}
	if sg, ok := m.game.(*snake.Game); ok {
		sum := sg.Summary()
		run.AIScore = sum.AIScore
		run.Reason = sum.Reason
	}

	if _, err := m.services.Store.SaveRun(run); err != nil {
		m.services.logger().Warn("run not saved", "mode", run.Mode, "err", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.services.logger().Warn("screenshot failed", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.services.logger().Warn("screenshot failed", "err", err)
	}
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, including the latest window size.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run plays one game in the terminal. It returns true when the user asked
// to go back to the menu rather than quit.
func Run(game registry.Game, services Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(NewModel(game, services, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
