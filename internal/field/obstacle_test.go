package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirOpposite(t *testing.T) {
	assert.Equal(t, DirDown, DirUp.Opposite())
	assert.Equal(t, DirRight, DirLeft.Opposite())
	assert.Equal(t, DirUp, DirDown.Opposite())
	assert.Equal(t, DirLeft, DirRight.Opposite())

	for _, d := range []Dir{DirUp, DirLeft, DirDown, DirRight} {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		assert.Equal(t, 0, dx+ox, "%s", d)
		assert.Equal(t, 0, dy+oy, "%s", d)
	}
}

func TestObstacleNeverBacktracks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		o := NewObstacle(rng.Intn(60), rng)
		for j := 1; j < o.Len(); j++ {
			if o.Moves[j] == o.Moves[j-1].Opposite() {
				t.Fatalf("walk %d reverses at move %d: %v", i, j, o.Moves)
			}
		}
	}
}

func TestObstacleExtentsMatchPath(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		o := NewObstacle(rng.Intn(40), rng)

		minX, maxX, minY, maxY := 0, 0, 0, 0
		for _, c := range o.Cells(P(0, 0)) {
			minX = min(minX, c.X)
			maxX = max(maxX, c.X)
			minY = min(minY, c.Y)
			maxY = max(maxY, c.Y)
		}
		assert.Equal(t, -minX, o.Left)
		assert.Equal(t, maxX, o.Right)
		assert.Equal(t, -minY, o.Up)
		assert.Equal(t, maxY, o.Down)
		assert.Equal(t, maxX-minX+1, o.Width())
		assert.Equal(t, maxY-minY+1, o.Height())
	}
}

func TestObstacleCellsAreConnected(t *testing.T) {
	o := NewObstacle(25, rand.New(rand.NewSource(3)))
	cells := o.Cells(P(10, 10))

	assert.Len(t, cells, 26)
	assert.Equal(t, P(10, 10), cells[0])
	for i := 1; i < len(cells); i++ {
		dist := abs(cells[i].X-cells[i-1].X) + abs(cells[i].Y-cells[i-1].Y)
		assert.Equal(t, 1, dist, "step %d", i)
	}
}

func TestObstacleZeroLength(t *testing.T) {
	o := NewObstacle(0, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, []Point{P(4, 5)}, o.Cells(P(4, 5)))
	assert.Equal(t, 1, o.Width())
	assert.Equal(t, 1, o.Height())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
