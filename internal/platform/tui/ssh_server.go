package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.arena/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer serves the arena over SSH. Every session runs its own Bubble
// Tea program and game; only the score stores are shared.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	services Services
	logger   *log.Logger
}

// NewSSHServer creates a server. The services' stores are closed by Shutdown.
func NewSSHServer(cfg SSHServerConfig, services Services) (*SSHServer, error) {
	logger := services.logger().WithPrefix("ssh")

	srv := &SSHServer{
		config:   cfg,
		services: services,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arena", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.services, cfg, sess.User()), []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "err", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the history store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.services.Store != nil {
		if err := s.services.Store.Close(); err != nil {
			s.logger.Warn("closing score history", "err", err)
		}
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel drives one SSH session: menu, game and scoreboard.
type SessionModel struct {
	services   Services
	config     core.RuntimeConfig
	username   string
	sessionID  string
	screen     sessionScreen
	menu       MenuModel
	gameModel  Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(services Services, cfg core.RuntimeConfig, username string) SessionModel {
	id := uuid.NewString()
	services.Logger = services.logger().With("session", id, "user", username)

	return SessionModel{
		services:  services,
		config:    cfg,
		username:  username,
		sessionID: id,
		menu:      NewMenuModel(services, cfg),
	}
}

// SessionID returns the session's unique identifier.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Embedded models signal completion with tea.Quit. The session ignores
// those commands and switches screens instead of ending the program.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.services, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, err := registry.Create(id)
		if err != nil {
			m.services.logger().Error("cannot create game", "mode", id, "err", err)
			m.menu = NewMenuModel(m.services, m.config)
			return m, nil
		}
		m.services.logger().Info("round started", "mode", id)
		m.gameModel = NewModel(game, m.services, m.config)
		m.screen = screenGame
		return m, m.gameModel.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = gm
	}

	switch {
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.gameModel.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.services, m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
