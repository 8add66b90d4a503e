package core

import (
	"strings"
)

// ScreenCell is a single character position in the screen buffer.
type ScreenCell struct {
	Rune  rune
	Color Color
}

var blankCell = ScreenCell{Rune: ' ', Color: ColorDefault}

// Rect is an axis-aligned area of the screen, in character units.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Screen is a character buffer the game draws into. The platform turns it
// into terminal output, so games never touch the terminal themselves.
// Cells are stored row-major in a flat slice.
type Screen struct {
	width  int
	height int
	cells  []ScreenCell
}

// NewScreen creates a blank screen buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.reset(width, height)
	return s
}

func (s *Screen) reset(width, height int) {
	s.width = max(0, width)
	s.height = max(0, height)
	s.cells = make([]ScreenCell, s.width*s.height)
	s.Clear()
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	old, oldW, oldH := s.cells, s.width, s.height
	s.reset(width, height)

	w, h := min(oldW, s.width), min(oldH, s.height)
	for y := 0; y < h; y++ {
		copy(s.cells[y*s.width:y*s.width+w], old[y*oldW:y*oldW+w])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// SetColored places a rune with a foreground color. Out-of-bounds
// coordinates are ignored.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = ScreenCell{Rune: r, Color: c}
	}
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) ScreenCell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes uncolored text starting at (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text one rune per column starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered draws text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColored(y, text, ColorDefault)
}

// DrawTextCenteredColored draws colored text centered on row y.
func (s *Screen) DrawTextCenteredColored(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawTextColored(x, y, text, c)
}

// DrawBoxColored draws a box outline with light box-drawing runes.
func (s *Screen) DrawBoxColored(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1

	for x := r.X + 1; x < right; x++ {
		s.SetColored(x, r.Y, '─', c)
		s.SetColored(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetColored(r.X, y, '│', c)
		s.SetColored(right, y, '│', c)
	}

	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(right, r.Y, '┐', c)
	s.SetColored(r.X, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// DrawHLine draws length copies of r to the right of (x, y).
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.SetColored(x+i, y, r, ColorDefault)
	}
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.cells[y*s.width : (y+1)*s.width] {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
