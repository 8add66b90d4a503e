package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Glyphs drawn on the board. Each grid cell spans two terminal columns.
const (
	glyphSegment  = '█'
	glyphFood     = '●'
	glyphObstacle = '▓'
)

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.player == nil {
		dst.DrawTextCentered(dst.Height()/2, g.Title())
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minGridW*cellWidth+2, minGridH+hudHeight+2))
		return
	}

	g.renderHUD(dst)

	board := g.boardRect(dst)
	dst.DrawBoxColored(board, core.ColorGray)

	for _, c := range g.obstacles.Slice() {
		g.drawCell(dst, board, c, glyphObstacle, glyphObstacle, core.ColorGray)
	}
	for _, p := range g.powerups.Active() {
		g.drawCell(dst, board, p.Cell, p.Kind.Glyph(), ' ', p.Kind.Color())
	}
	if g.grid.InBounds(g.food) {
		g.drawCell(dst, board, g.food, glyphFood, ' ', core.ColorRed)
	}
	if g.ai != nil {
		g.drawSnake(dst, board, g.ai, core.ColorBrightBlue, core.ColorBlue)
	}
	g.drawSnake(dst, board, g.player, core.ColorBrightGreen, core.ColorGreen)

	g.renderOverlay(dst, board)
}

// boardRect centers the bordered board below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w := g.grid.W*cellWidth + 2
	h := g.grid.H + 2
	x := max(0, (dst.Width()-w)/2)
	return core.NewRect(x, hudHeight, w, h)
}

func (g *Game) drawCell(dst *core.Screen, board core.Rect, c core.Cell, left, right rune, color core.Color) {
	if !g.grid.InBounds(c) {
		return
	}
	x := board.X + 1 + c.X*cellWidth
	y := board.Y + 1 + c.Y
	dst.SetColored(x, y, left, color)
	dst.SetColored(x+1, y, right, color)
}

func (g *Game) drawSnake(dst *core.Screen, board core.Rect, s *Snake, headColor, bodyColor core.Color) {
	if !s.Alive && s.IsAI {
		headColor, bodyColor = core.ColorGray, core.ColorGray
	}
	if s.Invincible() {
		headColor = core.ColorOrange
	}
	for i := len(s.Body) - 1; i >= 0; i-- {
		color := bodyColor
		if i == 0 {
			color = headColor
		}
		g.drawCell(dst, board, s.Body[i], glyphSegment, glyphSegment, color)
	}
}

// renderHUD draws scores, level and active effects on the first two rows.
func (g *Game) renderHUD(dst *core.Screen) {
	left := fmt.Sprintf("Score: %d", g.player.Score)
	if g.ai != nil {
		left += fmt.Sprintf("  AI: %d", g.ai.Score)
	}
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	dst.DrawTextCentered(0, g.Title())

	right := fmt.Sprintf("Level: %d  Best: %d", g.level, g.HighScore())
	dst.DrawText(dst.Width()-len(right)-1, 0, right)

	if effects := effectsLabel(g.player.Effects); effects != "" {
		dst.DrawTextColored(1, 1, effects, core.ColorYellow)
	} else {
		dst.DrawHLine(0, 1, dst.Width(), '─')
	}
}

// effectsLabel formats active effects as "Speed 3.2s  x2 1.0s".
func effectsLabel(effects []ActiveEffect) string {
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		parts = append(parts, fmt.Sprintf("%s %.1fs", e.Kind, e.Remaining.Seconds()))
	}
	return strings.Join(parts, "  ")
}

func (g *Game) renderOverlay(dst *core.Screen, board core.Rect) {
	mid := board.Y + board.H/2
	switch g.phase {
	case PhasePaused:
		dst.DrawTextCenteredColored(mid, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, " P to resume ")
	case PhaseGameOver:
		dst.DrawTextCenteredColored(mid-1, " GAME OVER ", core.ColorBrightRed)
		if r := g.lastResult.Reason; r != ReasonNone {
			dst.DrawTextCentered(mid, fmt.Sprintf(" Hit: %s ", r))
		}
		switch g.Winner() {
		case "You":
			dst.DrawTextCenteredColored(mid+1, " You Win! ", core.ColorBrightGreen)
		case "AI":
			dst.DrawTextCenteredColored(mid+1, " AI Wins! ", core.ColorBrightBlue)
		case "Draw":
			dst.DrawTextCentered(mid+1, " Draw ")
		}
		dst.DrawTextCentered(mid+2, fmt.Sprintf(" Score: %d  Best: %d ", g.player.Score, g.HighScore()))
		dst.DrawTextCentered(mid+3, " R to restart, Q to quit ")
	}
}
