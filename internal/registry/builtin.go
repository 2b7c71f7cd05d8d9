package registry

import (
	"os"

	"github.com/vovakirdan/wallrow/internal/player"
)

// Built-in strategy IDs.
const (
	Neighbor = "neighbor"
	Random   = "random"
	Blocker  = "blocker"
	Stdin    = "stdin"
)

func init() {
	Register(Neighbor, "Neighbor (random, near existing marks)", func(seed int64) player.Player {
		return player.NewNeighbor(Neighbor, seed)
	})
	Register(Random, "Random free cell", func(seed int64) player.Player {
		return player.NewRandom(Random, seed)
	})
	Register(Blocker, "Blocker (wins or blocks one move ahead)", func(seed int64) player.Player {
		return player.NewBlocker(Blocker, seed)
	})
	Register(Stdin, "Human via standard input", func(int64) player.Player {
		return player.NewStdin("human", os.Stdin, os.Stdout)
	})
}
