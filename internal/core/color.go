package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Colors used by the board renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorYellow
	ColorCyan
	ColorGray
	ColorBrightRed
	ColorBrightBlue
	ColorBrightGreen
)

// Cell is a single screen position.
type Cell struct {
	Rune  rune
	Color Color
}
