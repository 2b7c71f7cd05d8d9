// wallrow is a connect-N game on a grid strewn with wall obstacles.
//
// Usage:
//
//	wallrow list             - List strategies and presets
//	wallrow auto             - Play a match between two strategies in the console
//	wallrow play             - Play against a strategy in the terminal UI
//	wallrow serve            - Start SSH server for remote play
//	wallrow results          - Show recorded results
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible fields and bots
//	--db <path>        - Set database path (default: ~/.wallrow/results.db)
//	--preset <name>    - Board preset: classic, gomoku, walls
//	--config <path>    - Custom board config YAML
//	--density <name>   - Wall density: none, sparse, normal, dense
//	--verbose          - Log every move
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wallrow/internal/config"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagPreset  string
	flagConfig  string
	flagDensity string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wallrow",
	Short: "Wallrow - connect N in a row around the walls",
	Long: `Wallrow is a connect-N game on a rectangular grid. Optional wall
obstacles are generated as short random walks spaced by the configured gap.
Walls can split the free cells into separate regions.

If the first player completes a line while moves remain, the second player
gets one last move: a line of their own makes the game a draw.

Available commands:
  list     - Show strategies and presets
  auto     - Play two strategies against each other
  play     - Play against a strategy in the terminal
  serve    - Start SSH server for remote play
  results  - View recorded results

Examples:
  wallrow list
  wallrow auto --x blocker --o random
  wallrow play --preset walls --density dense
  wallrow serve --ssh :2222
  wallrow results --stats`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wallrow/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", config.DefaultPreset, "Board preset")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDensity, "density", "", "Wall density: none, sparse, normal, dense")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every move")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
}

// loadGameConfig resolves the board from .env, the preset or custom file,
// WALLROW_* variables and --density, in that order.
func loadGameConfig() (config.GameConfig, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.GameConfig{}, err
	}
	cfg, err := config.Load(flagPreset, flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if flagDensity != "" {
		if err := config.ApplyDensity(&cfg, config.Density(flagDensity)); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// presetName is the label stored with results.
func presetName() string {
	if flagConfig != "" {
		return "custom"
	}
	return flagPreset
}

func newLogger(prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
