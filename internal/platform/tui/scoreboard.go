package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

const (
	historyRows = 100
	recentRows  = 20
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// scoreKeys are the scoreboard bindings. They double as the help bar.
type scoreKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best score and round history of each mode.
// The last tab lists the latest rounds across all modes.
type ScoreboardModel struct {
	modes    []registry.GameInfo
	tab      int // Index into modes; len(modes) is the recent tab
	services Services
	runs     []storage.Run
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     scoreKeys
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard starting at the first mode.
func NewScoreboardModel(services Services, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:    registry.List(),
		services: services,
		help:     help.New(),
		keys:     newScoreKeys(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m ScoreboardModel) recentTab() bool {
	return m.tab == len(m.modes)
}

// load fetches the rows for the current tab and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil

	if store := m.services.Store; store != nil {
		var err error
		if m.recentTab() {
			m.runs, err = store.RecentRuns(recentRows)
		} else {
			mode := m.modes[m.tab].ID
			m.runs, err = store.TopScores(mode, historyRows)
			if err == nil {
				m.stats, err = store.GetGameStats(mode)
			}
		}
		if err != nil {
			m.services.logger().Warn("cannot load history", "err", err)
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	first := table.Column{Title: "Rank", Width: 5}
	if m.recentTab() {
		first = table.Column{Title: "Mode", Width: 10}
	}
	columns := []table.Column{
		first,
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 4},
		{Title: "AI", Width: 5},
		{Title: "End", Width: 9},
		{Title: "Date", Width: 12},
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		lead := fmt.Sprintf("#%d", i+1)
		if m.recentTab() {
			lead = r.Mode
		}
		ai := "-"
		if r.Mode == "ai_battle" {
			ai = fmt.Sprint(r.AIScore)
		}
		rows[i] = table.Row{lead, fmt.Sprint(r.Score), fmt.Sprint(r.Level), ai, r.Reason, r.CreatedAt.Format("Jan 02 15:04")}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// best prefers the high-score file; history only fills in when it is larger.
func (m ScoreboardModel) best(mode string) int {
	best := 0
	if m.services.Scores != nil {
		best = m.services.Scores.Best(mode)
	}
	if m.stats != nil {
		best = max(best, m.stats.HighScore)
	}
	return best
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		tabs := len(m.modes) + 1
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % tabs
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + tabs - 1) % tabs
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabsLine(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summaryLine(), m.width))
	b.WriteString("\n\n")

	body := emptyStyle.Render("No rounds recorded yet.\nPlay a round to fill the history!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(panelStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) tabsLine() string {
	tabs := make([]string, 0, len(m.modes)+1)
	for i, info := range m.modes {
		tabs = append(tabs, m.renderTab(i, fmt.Sprintf("%s %d", info.Title, m.bestFor(i))))
	}
	tabs = append(tabs, m.renderTab(len(m.modes), "Recent"))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) renderTab(i int, label string) string {
	if i == m.tab {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}

// bestFor is the tab label score; only the open tab has history stats loaded.
func (m ScoreboardModel) bestFor(i int) int {
	if i == m.tab {
		return m.best(m.modes[i].ID)
	}
	if m.services.Scores != nil {
		return m.services.Scores.Best(m.modes[i].ID)
	}
	return 0
}

// summaryLine shows the history totals for the open mode.
func (m ScoreboardModel) summaryLine() string {
	var line string
	switch {
	case m.recentTab():
		line = "Latest rounds across all modes"
	case m.stats != nil && m.stats.GamesCount > 0:
		line = fmt.Sprintf("Best: %d  |  Rounds: %d  |  Avg: %.0f  |  Top level: %d",
			m.best(m.modes[m.tab].ID), m.stats.GamesCount, m.stats.AvgScore, m.stats.BestLevel)
	default:
		line = fmt.Sprintf("Best: %d", m.best(m.modes[m.tab].ID))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(line)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves.
// Returns true if the user wants the menu back, false if quitting.
func RunScoreboard(services Services, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(services, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
