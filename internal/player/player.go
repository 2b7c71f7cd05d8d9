// Package player contains move strategies that drive one side of a game.
// Strategies only see the read-only state.View; the match applies their moves.
package player

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// Player picks moves for one side.
type Player interface {
	// Name returns a display name for logs and result records.
	Name() string

	// SetSymbol tells the player which mark it plays.
	// Called by the match before the first move.
	SetSymbol(s field.Symbol)

	// MakeMove returns the cell to play. Returning an occupied or
	// off-board cell disqualifies the player.
	MakeMove(v state.View) field.Point
}

// NoMove is returned when a strategy has nothing to play.
// It lies outside every board.
var NoMove = field.P(-1, -1)

// base holds the fields shared by the bundled strategies.
type base struct {
	name   string
	symbol field.Symbol
}

func (b *base) Name() string             { return b.name }
func (b *base) SetSymbol(s field.Symbol) { b.symbol = s }

// Symbol returns the mark assigned by SetSymbol.
func (b *base) Symbol() field.Symbol { return b.symbol }

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// freeCells lists every Empty cell in row-major order.
func freeCells(v state.View) []field.Point {
	var cells []field.Point
	for y := 0; y < v.Rows(); y++ {
		for x := 0; x < v.Cols(); x++ {
			if v.Get(x, y) == field.Empty {
				cells = append(cells, field.P(x, y))
			}
		}
	}
	return cells
}

// hasNeighbor reports whether any of the eight cells around p holds a mark.
func hasNeighbor(v state.View, p field.Point) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if v.Get(p.X+dx, p.Y+dy).IsPlayer() {
				return true
			}
		}
	}
	return false
}
