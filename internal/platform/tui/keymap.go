package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
)

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Arrows, WASD and vim keys all steer.
type KeyMapper struct {
	game []actionBinding
	menu []menuBinding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	quit := key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit"))
	up := key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w/k", "up"))
	down := key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s/j", "down"))
	left := key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a/h", "left"))
	right := key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d/l", "right"))
	back := key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back"))

	return &KeyMapper{
		game: []actionBinding{
			{quit, core.ActionQuit},
			{up, core.ActionUp},
			{down, core.ActionDown},
			{left, core.ActionLeft},
			{right, core.ActionRight},
			{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")), core.ActionConfirm},
			{back, core.ActionBack},
			{key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause")), core.ActionPause},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")), core.ActionRestart},
		},
		menu: []menuBinding{
			{quit, MenuActionQuit},
			{up, MenuActionUp},
			{down, MenuActionDown},
			{left, MenuActionLeft},
			{right, MenuActionRight},
			{key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")), MenuActionSelect},
			{back, MenuActionBack},
			{key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")), MenuActionScoreboard},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MenuAction is a key press translated into menu intent.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
