package state

import "github.com/vovakirdan/wallrow/internal/field"

// lineDirs are the four line orientations: horizontal, vertical and both diagonals.
var lineDirs = [4]struct{ dx, dy int }{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// isWinning reports whether some window of WinLen cells through (x, y) is
// filled with a single player's marks. Walls and off-board cells both read
// as Wall, so no bounds checks are needed here.
func (s *State) isWinning(x, y int) bool {
	n := s.opts.WinLen
	for _, d := range lineDirs {
		for shift := 0; shift < n; shift++ {
			var hasX, hasO, blocked bool
			for i := 0; i < n && !blocked; i++ {
				k := shift - i
				switch s.grid.Get(x+d.dx*k, y+d.dy*k) {
				case field.PlayerX:
					hasX = true
				case field.PlayerO:
					hasO = true
				default:
					blocked = true
				}
			}
			if !blocked && hasX != hasO {
				return true
			}
		}
	}
	return false
}
