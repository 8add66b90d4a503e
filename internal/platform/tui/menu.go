package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// MenuItem is one selectable row of the main menu.
type MenuItem struct {
	GameID      string // Empty for non-game entries
	Title       string
	Description string
	kind        menuItemKind
}

type menuItemKind int

const (
	itemGame menuItemKind = iota
	itemHelp
	itemScores
	itemQuit
)

// helpPages are shown by the "How to Play" entry, one page at a time.
var helpPages = []struct {
	title string
	lines []string
}{
	{"Controls", []string{
		"Arrows, WASD or HJKL   steer",
		"P or Space             pause",
		"R or Enter             restart after game over",
		"Esc or B               back to menu (paused or game over)",
		"Q                      quit",
	}},
	{"Modes", []string{
		"Classic     eat food, grow, avoid walls and yourself",
		"AI Battle   race a pathfinding snake; only your death ends the round",
		"Obstacle    walls appear and multiply with every level",
		"",
		"Levels come every 50 points (30 in Obstacle), each one faster.",
	}},
	{"Power-ups", []string{
		"»  Speed    move twice as fast",
		"«  Slow     move slower",
		"$  x2       food is worth double",
		"♦  Shield   pass through walls, obstacles and snakes",
		"",
		"Effects last a few seconds; the HUD shows what is left.",
	}},
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	services       Services
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	helpPage       int
	showHelp       bool
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered mode.
func NewMenuModel(services Services, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+3)
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description, kind: itemGame})
	}
	items = append(items,
		MenuItem{Title: "How to Play", kind: itemHelp},
		MenuItem{Title: "High Scores", kind: itemScores},
		MenuItem{Title: "Quit", kind: itemQuit},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		services:  services,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			return m.handleHelpKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.kind {
		case itemGame:
			m.selected = &item
			return m, tea.Quit
		case itemHelp:
			m.showHelp = true
			m.helpPage = 0
		case itemScores:
			m.openScoreboard = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionLeft, MenuActionUp:
		if m.helpPage > 0 {
			m.helpPage--
		}
	case MenuActionRight, MenuActionDown, MenuActionSelect:
		if m.helpPage < len(helpPages)-1 {
			m.helpPage++
		} else {
			m.showHelp = false
		}
	case MenuActionBack:
		m.showHelp = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S N A K E   A R E N A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Choose a mode"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if item.kind == itemGame && m.services.Scores != nil {
			line += fmt.Sprintf("  (best %d)", m.services.Scores.Best(item.GameID))
		}
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := m.items[m.cursor].Description; desc != "" {
		b.WriteString(centerText(menuDimStyle.Render(desc), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) helpView() string {
	page := helpPages[m.helpPage]

	var b strings.Builder
	b.WriteString("\n")
	title := fmt.Sprintf("How to Play: %s (%d/%d)", page.title, m.helpPage+1, len(helpPages))
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Render(strings.Join(page.lines, "\n"))
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Left/Right: Page  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected mode, or nil if none was selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the outcome of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection.
func RunMenu(services Services, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(services, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
