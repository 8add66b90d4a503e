package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// colorStyles maps each palette entry to its lipgloss style.
var colorStyles = buildColorStyles()

func buildColorStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style)
	for _, c := range core.Colors() {
		style := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		styles[c] = style
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string.
// Runs of cells sharing a color are styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
