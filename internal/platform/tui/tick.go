// Package tui runs the arena in a terminal with Bubble Tea: the mode menu,
// the game loop, the scoreboard, and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// TickMsg is sent once per platform frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
