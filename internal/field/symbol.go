// Package field provides the playing field of wallrow: a 2-bit packed grid,
// random obstacle walks and the initializers that seed a grid with walls.
//
// The package is UI-agnostic and deterministic under a fixed seed.
package field

// Symbol is the value held by a single cell.
// Exactly four symbols exist, which lets a cell fit in two bits.
type Symbol uint8

const (
	Empty Symbol = iota
	PlayerX
	PlayerO
	Wall
)

// String returns the name of the symbol.
func (s Symbol) String() string {
	switch s {
	case Empty:
		return "Empty"
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	case Wall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Rune returns the character used for the symbol in text boards.
func (s Symbol) Rune() rune {
	switch s {
	case PlayerX:
		return 'X'
	case PlayerO:
		return 'O'
	case Wall:
		return '#'
	default:
		return '.'
	}
}

// IsPlayer reports whether s is one of the two player marks.
func (s Symbol) IsPlayer() bool {
	return s == PlayerX || s == PlayerO
}

// Opponent returns the other player mark.
// Non-player symbols have no opponent and map to Empty.
func (s Symbol) Opponent() Symbol {
	switch s {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// ParseSymbol converts "x"/"o" (any case) to a player mark.
func ParseSymbol(s string) (Symbol, bool) {
	switch s {
	case "x", "X":
		return PlayerX, true
	case "o", "O":
		return PlayerO, true
	}
	return Empty, false
}

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}
