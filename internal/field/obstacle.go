package field

import "math/rand"

// Dir is a unit step of an obstacle walk.
type Dir uint8

// Directions are ordered so that d and d+2 (mod 4) are opposites.
const (
	DirUp Dir = iota
	DirLeft
	DirDown
	DirRight
)

// String returns the single-letter name of the direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "U"
	case DirLeft:
		return "L"
	case DirDown:
		return "D"
	case DirRight:
		return "R"
	default:
		return "?"
	}
}

// Delta returns the (dx, dy) offset of one step in this direction.
// Up decreases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Obstacle is a random non-backtracking walk.
// Left/Right/Up/Down hold the furthest excursion from the origin in each
// direction, so the walk fits in a box of (Left+Right+1) x (Up+Down+1).
type Obstacle struct {
	Moves []Dir
	Left  int
	Right int
	Up    int
	Down  int
}

// NewObstacle builds a walk of length moves using rng.
// No move is the exact reverse of the move before it.
func NewObstacle(length int, rng *rand.Rand) *Obstacle {
	if length < 0 {
		length = 0
	}
	o := &Obstacle{Moves: make([]Dir, 0, length)}

	x, y := 0, 0
	for i := 0; i < length; i++ {
		d := Dir(rng.Intn(4))
		if i > 0 {
			for d == o.Moves[i-1].Opposite() {
				d = Dir(rng.Intn(4))
			}
		}
		o.Moves = append(o.Moves, d)

		dx, dy := d.Delta()
		x += dx
		y += dy
		o.Left = max(o.Left, -x)
		o.Right = max(o.Right, x)
		o.Up = max(o.Up, -y)
		o.Down = max(o.Down, y)
	}
	return o
}

// Len returns the number of moves.
func (o *Obstacle) Len() int {
	return len(o.Moves)
}

// Width returns the bounding box width.
func (o *Obstacle) Width() int {
	return o.Left + o.Right + 1
}

// Height returns the bounding box height.
func (o *Obstacle) Height() int {
	return o.Up + o.Down + 1
}

// Cells returns every point visited when walking from origin, origin first.
// Self-intersecting walks repeat points.
func (o *Obstacle) Cells(origin Point) []Point {
	cells := make([]Point, 0, len(o.Moves)+1)
	cur := origin
	cells = append(cells, cur)
	for _, d := range o.Moves {
		cur = cur.Add(d.Delta())
		cells = append(cells, cur)
	}
	return cells
}
