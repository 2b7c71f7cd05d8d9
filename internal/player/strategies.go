package player

import (
	"math/rand"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// neighborAttempts bounds the search for a cell next to an existing mark.
const neighborAttempts = 50

// Neighbor plays a random free cell, preferring cells touching a mark.
// After neighborAttempts misses it settles for the last free cell drawn.
type Neighbor struct {
	base
	rng *rand.Rand
}

// NewNeighbor creates a Neighbor strategy. Seed 0 picks a time-based seed.
func NewNeighbor(name string, seed int64) *Neighbor {
	return &Neighbor{base: base{name: name}, rng: newRand(seed)}
}

// MakeMove implements Player.
func (n *Neighbor) MakeMove(v state.View) field.Point {
	return pickNeighbor(v, n.rng)
}

func pickNeighbor(v state.View, rng *rand.Rand) field.Point {
	free := freeCells(v)
	if len(free) == 0 {
		return NoMove
	}
	var p field.Point
	for i := 0; i < neighborAttempts; i++ {
		p = free[rng.Intn(len(free))]
		if hasNeighbor(v, p) {
			break
		}
	}
	return p
}

// Random plays a uniformly random free cell.
type Random struct {
	base
	rng *rand.Rand
}

// NewRandom creates a Random strategy. Seed 0 picks a time-based seed.
func NewRandom(name string, seed int64) *Random {
	return &Random{base: base{name: name}, rng: newRand(seed)}
}

// MakeMove implements Player.
func (r *Random) MakeMove(v state.View) field.Point {
	free := freeCells(v)
	if len(free) == 0 {
		return NoMove
	}
	return free[r.rng.Intn(len(free))]
}

// Blocker completes its own line when it can, otherwise blocks the
// opponent's immediate win, otherwise plays like Neighbor.
type Blocker struct {
	base
	rng *rand.Rand
}

// NewBlocker creates a Blocker strategy. Seed 0 picks a time-based seed.
func NewBlocker(name string, seed int64) *Blocker {
	return &Blocker{base: base{name: name}, rng: newRand(seed)}
}

// MakeMove implements Player.
func (b *Blocker) MakeMove(v state.View) field.Point {
	me := b.symbol
	if !me.IsPlayer() {
		me = v.CurrentPlayer()
	}
	free := freeCells(v)
	for _, p := range free {
		if completesLine(v, p, me) {
			return p
		}
	}
	for _, p := range free {
		if completesLine(v, p, me.Opponent()) {
			return p
		}
	}
	return pickNeighbor(v, b.rng)
}

var lineDirs = [4]field.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}

// completesLine reports whether putting s on p would make a run of at
// least WinLen marks of s.
func completesLine(v state.View, p field.Point, s field.Symbol) bool {
	for _, d := range lineDirs {
		run := 1 + countRun(v, p, d.X, d.Y, s) + countRun(v, p, -d.X, -d.Y, s)
		if run >= v.WinLen() {
			return true
		}
	}
	return false
}

func countRun(v state.View, p field.Point, dx, dy int, s field.Symbol) int {
	n := 0
	for q := p.Add(dx, dy); v.Get(q.X, q.Y) == s; q = q.Add(dx, dy) {
		n++
	}
	return n
}
