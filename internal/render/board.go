// Package render draws a game board into a core.Screen and provides a
// console observer that prints it after every move.
package render

import (
	"fmt"

	"github.com/vovakirdan/wallrow/internal/core"
	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// symbolColors maps cell contents to screen colors.
var symbolColors = map[field.Symbol]core.Color{
	field.Empty:   core.ColorGray,
	field.PlayerX: core.ColorBrightRed,
	field.PlayerO: core.ColorBrightBlue,
	field.Wall:    core.ColorYellow,
}

// Size returns the screen dimensions Draw needs for v:
// the framed board plus one status line.
func Size(v state.View) (width, height int) {
	width = v.Cols()*2 + 3
	if n := len(StatusLine(v)); n > width {
		width = n
	}
	return width, v.Rows() + 3
}

// CellOrigin returns the screen column and row where cell (x, y) is drawn.
func CellOrigin(x, y int) (int, int) {
	return 2 + x*2, 1 + y
}

// Draw renders the board of v inside a frame with a status line below it.
// A non-nil cursor is marked with brackets around its cell.
func Draw(dst *core.Screen, v state.View, cursor *field.Point) {
	rows, cols := v.Rows(), v.Cols()
	dst.DrawBox(core.NewRect(0, 0, cols*2+3, rows+2), core.ColorGray)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s := v.Get(x, y)
			sx, sy := CellOrigin(x, y)
			dst.SetCell(sx, sy, core.Cell{Rune: s.Rune(), Color: symbolColors[s]})
		}
	}

	if cursor != nil && validCursor(v, *cursor) {
		sx, sy := CellOrigin(cursor.X, cursor.Y)
		dst.SetCell(sx-1, sy, core.Cell{Rune: '[', Color: core.ColorBrightGreen})
		dst.SetCell(sx+1, sy, core.Cell{Rune: ']', Color: core.ColorBrightGreen})
	}

	dst.DrawTextColor(0, rows+2, StatusLine(v), statusColor(v))
}

func validCursor(v state.View, p field.Point) bool {
	return p.X >= 0 && p.X < v.Cols() && p.Y >= 0 && p.Y < v.Rows()
}

// StatusLine describes the game stage in one line.
func StatusLine(v state.View) string {
	switch v.Status() {
	case state.StatusEnded:
		if w := v.Winner(); w.IsPlayer() {
			return fmt.Sprintf("%s wins after %d moves", w, v.MoveNo())
		}
		return fmt.Sprintf("draw after %d moves", v.MoveNo())
	case state.StatusLastMove:
		p := v.CurrentPlayer()
		return fmt.Sprintf("%s has a line, %s plays a last move", p.Opponent(), p)
	default:
		return fmt.Sprintf("move %d/%d, %s to play", v.MoveNo()+1, v.MaxMoves(), v.CurrentPlayer())
	}
}

func statusColor(v state.View) core.Color {
	switch v.Status() {
	case state.StatusEnded:
		return symbolColors[v.Winner()]
	case state.StatusLastMove:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}
