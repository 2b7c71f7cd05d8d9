package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrBadParams is returned for out-of-range obstacle parameters.
var ErrBadParams = errors.New("field: invalid obstacle parameters")

// Initializer populates a freshly reset grid before a game starts.
type Initializer interface {
	Initialize(g *Grid)
}

// InitializerFunc adapts a plain function to Initializer.
type InitializerFunc func(g *Grid)

// Initialize calls f(g).
func (f InitializerFunc) Initialize(g *Grid) { f(g) }

// NoObstacles leaves the grid untouched.
type NoObstacles struct{}

// Initialize does nothing.
func (NoObstacles) Initialize(*Grid) {}

// reservedMark tags cells inside the gap margin while obstacles are stamped.
// It never survives finalize.
const reservedMark = PlayerX

// ObstacleParams configures RandomObstacles.
type ObstacleParams struct {
	PlayableFraction float64 // Target share of non-wall cells, 0..1
	MaxObstacleLen   int     // Upper bound for a single walk length
	Gap              int     // Reserved margin radius around placed walls
	Seed             int64   // RNG seed (0 = time based)
}

// DefaultObstacleParams mirrors the "walls" preset.
func DefaultObstacleParams() ObstacleParams {
	return ObstacleParams{
		PlayableFraction: 0.75,
		MaxObstacleLen:   50,
		Gap:              1,
	}
}

// Validate checks parameter ranges.
func (p ObstacleParams) Validate() error {
	if math.IsNaN(p.PlayableFraction) || p.PlayableFraction < 0 || p.PlayableFraction > 1 {
		return fmt.Errorf("%w: playable fraction %v outside [0,1]", ErrBadParams, p.PlayableFraction)
	}
	if p.MaxObstacleLen < 0 {
		return fmt.Errorf("%w: max obstacle length %d", ErrBadParams, p.MaxObstacleLen)
	}
	if p.Gap < 0 {
		return fmt.Errorf("%w: gap %d", ErrBadParams, p.Gap)
	}
	return nil
}

// GenStats describes the outcome of one generation run.
type GenStats struct {
	Requested  int  // Cells the fraction asked to block
	Inserted   int  // Wall cells actually placed
	Obstacles  int  // Walks stamped
	Exhaustive bool // Whether the search fell back to scanning from (0,0)
}

// Shortfall returns how many requested cells could not be blocked.
func (s GenStats) Shortfall() int {
	return s.Requested - s.Inserted
}

// RandomObstacles carves random walls into the grid until the playable
// fraction is reached or no obstacle fits anymore.
type RandomObstacles struct {
	params ObstacleParams
	rng    *rand.Rand
	last   GenStats
}

// NewRandomObstacles validates p and seeds the generator.
// Successive Initialize calls continue the same random stream.
func NewRandomObstacles(p ObstacleParams) (*RandomObstacles, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomObstacles{
		params: p,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Params returns the generator configuration.
func (r *RandomObstacles) Params() ObstacleParams {
	return r.params
}

// LastStats returns statistics of the most recent Initialize call.
func (r *RandomObstacles) LastStats() GenStats {
	return r.last
}

// Initialize stamps obstacles into g. Reaching the requested density is not
// guaranteed; a sparser field is an accepted outcome.
func (r *RandomObstacles) Initialize(g *Grid) {
	area := g.Rows() * g.Cols()
	toBlock := int(math.Round(float64(area) * (1 - r.params.PlayableFraction)))
	stats := GenStats{Requested: toBlock}

	maxTries := max(1, int(math.Sqrt(float64(area))))
	exhaustive := false

	for toBlock > 0 {
		placed := false
		for try := 0; try < maxTries; try++ {
			o := NewObstacle(r.rng.Intn(r.params.MaxObstacleLen+1), r.rng)
			origin, ok := r.findPlace(o, g, exhaustive)
			if !ok {
				continue
			}
			n := r.stamp(o, g, origin, toBlock)
			toBlock -= n
			stats.Inserted += n
			stats.Obstacles++
			placed = true
			break
		}
		if placed {
			continue
		}
		if exhaustive {
			break
		}
		exhaustive = true
	}

	stats.Exhaustive = exhaustive
	finalize(g)
	r.last = stats
}

// findPlace looks for an origin where every cell of o is in range and Empty.
// The regular search wraps around from a random offset; the exhaustive one
// scans from (0,0).
func (r *RandomObstacles) findPlace(o *Obstacle, g *Grid, exhaustive bool) (Point, bool) {
	area := g.Rows() * g.Cols()
	start := 0
	if !exhaustive {
		start = r.rng.Intn(area)
	}
	for i := 0; i < area; i++ {
		idx := (start + i) % area
		origin := P(idx%g.Cols(), idx/g.Cols())
		if fits(o, g, origin) {
			return origin, true
		}
	}
	return Point{}, false
}

// fits reports whether o can be stamped at origin.
func fits(o *Obstacle, g *Grid, origin Point) bool {
	// Bounding box first: cheaper than walking the path.
	if origin.X-o.Left < 0 || origin.X+o.Right >= g.Cols() ||
		origin.Y-o.Up < 0 || origin.Y+o.Down >= g.Rows() {
		return false
	}
	for _, c := range o.Cells(origin) {
		// Out-of-range reads as Wall, so this also rejects leaving the grid.
		if g.Get(c.X, c.Y) != Empty {
			return false
		}
	}
	return true
}

// stamp walls the path of o from origin, placing at most limit new walls,
// and reserves the gap margin around each new wall. Returns walls placed.
func (r *RandomObstacles) stamp(o *Obstacle, g *Grid, origin Point, limit int) int {
	gap := r.params.Gap
	inserted := 0
	for _, c := range o.Cells(origin) {
		if inserted >= limit {
			break
		}
		if g.Get(c.X, c.Y) == Wall {
			continue
		}
		g.setUnchecked(c.X, c.Y, Wall)
		inserted++

		for dy := -gap; dy <= gap; dy++ {
			for dx := -gap; dx <= gap; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if g.Get(c.X+dx, c.Y+dy) == Empty {
					g.setUnchecked(c.X+dx, c.Y+dy, reservedMark)
				}
			}
		}
	}
	return inserted
}

// finalize clears every temporary reservation, leaving only Empty and Wall.
func finalize(g *Grid) {
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			if s := g.Get(x, y); s != Empty && s != Wall {
				g.setUnchecked(x, y, Empty)
			}
		}
	}
}
