package field

import (
	"errors"
	"fmt"
)

// Errors returned by checked grid writes.
var (
	ErrOutOfField  = errors.New("field: coordinate out of field")
	ErrBadSymbol   = errors.New("field: only player marks can be placed")
	ErrBadGridSize = errors.New("field: grid dimensions must be positive")
)

// Grid stores rows*cols cells at two bits per cell.
// Cell (x, y) lives at bit offset (x + y*cols)*2, row-major.
// Coordinates outside the grid read as Wall and are never stored.
type Grid struct {
	rows int
	cols int
	bits []byte
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadGridSize, rows, cols)
	}
	return &Grid{
		rows: rows,
		cols: cols,
		bits: make([]byte, (rows*cols*2+7)/8),
	}, nil
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Bytes returns the size of the packed storage.
func (g *Grid) Bytes() int { return len(g.bits) }

// IsValid reports whether (x, y) is inside the grid.
func (g *Grid) IsValid(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Get returns the symbol at (x, y), or Wall when (x, y) is out of range.
func (g *Grid) Get(x, y int) Symbol {
	if !g.IsValid(x, y) {
		return Wall
	}
	bit := (x + y*g.cols) * 2
	return Symbol((g.bits[bit/8] >> (bit % 8)) & 0b11)
}

// Set places a player mark at (x, y).
// Gameplay writes go through here; walls and clears are reserved to initializers.
func (g *Grid) Set(x, y int, s Symbol) error {
	if !s.IsPlayer() {
		return fmt.Errorf("%w: got %s", ErrBadSymbol, s)
	}
	if !g.IsValid(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfField, x, y)
	}
	g.setUnchecked(x, y, s)
	return nil
}

// setUnchecked overwrites any in-range cell with any symbol.
// Callers guarantee (x, y) is valid.
func (g *Grid) setUnchecked(x, y int, s Symbol) {
	bit := (x + y*g.cols) * 2
	shift := bit % 8
	b := &g.bits[bit/8]
	*b &^= 0b11 << shift
	*b |= byte(s&0b11) << shift
}

// Reset clears every cell to Empty.
func (g *Grid) Reset() {
	clear(g.bits)
}

// Count returns the number of cells holding s.
func (g *Grid) Count(s Symbol) int {
	n := 0
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if g.Get(x, y) == s {
				n++
			}
		}
	}
	return n
}

// FreeCells returns the number of Empty cells.
func (g *Grid) FreeCells() int {
	return g.Count(Empty)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	bits := make([]byte, len(g.bits))
	copy(bits, g.bits)
	return &Grid{rows: g.rows, cols: g.cols, bits: bits}
}
