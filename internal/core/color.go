package core

// Color is a foreground color for a screen cell.
type Color uint8

// Palette used by the board, HUD and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	colorCount
)

// ansi256 holds the terminal color code for each palette entry.
var ansi256 = [colorCount]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the ANSI 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansi256[c]
}

// Colors returns every palette entry in order.
func Colors() []Color {
	out := make([]Color, 0, colorCount)
	for c := ColorDefault; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}
