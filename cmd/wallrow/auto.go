package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/match"
	"github.com/vovakirdan/wallrow/internal/registry"
	"github.com/vovakirdan/wallrow/internal/render"
	"github.com/vovakirdan/wallrow/internal/storage"
)

var (
	flagX     string
	flagO     string
	flagGames int
	flagQuiet bool
	flagNoDB  bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Play a match between two strategies",
	Long: `Play one or more games between two registered strategies and print
the board after every move. The strategies default to the ones named by the
preset; use the "stdin" strategy to play a side by typing "x y" moves.

An illegal move (occupied, out of the field, out of turn) disqualifies the
side that made it and the opponent wins.

Examples:
  wallrow auto
  wallrow auto --x blocker --o random --games 20 --quiet
  wallrow auto --preset walls --density dense --seed 7
  wallrow auto --x stdin --o blocker`,
	Run: runAuto,
}

func init() {
	autoCmd.Flags().StringVar(&flagX, "x", "", "Strategy for X (default from preset)")
	autoCmd.Flags().StringVar(&flagO, "o", "", "Strategy for O (default from preset)")
	autoCmd.Flags().IntVarP(&flagGames, "games", "n", 1, "Number of games to play")
	autoCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print outcomes only")
	autoCmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Do not record results")
}

func runAuto(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}
	if flagX != "" {
		cfg.Players.X = flagX
	}
	if flagO != "" {
		cfg.Players.O = flagO
	}
	if flagGames < 1 {
		exitf("--games must be at least 1")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger("wallrow")

	s, err := cfg.NewState(seed)
	if err != nil {
		exitf("%v", err)
	}
	m := match.New(s, logger)

	sides := []struct {
		sym field.Symbol
		id  string
	}{
		{field.PlayerX, cfg.Players.X},
		{field.PlayerO, cfg.Players.O},
	}
	for i, side := range sides {
		p, err := registry.Create(side.id, seed+int64(i)+1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'wallrow list' to see available strategies.")
			os.Exit(1)
		}
		if err := m.AddPlayer(side.sym, p); err != nil {
			exitf("%v", err)
		}
	}

	if !flagQuiet {
		m.AddObserver(render.NewConsoleWriter(os.Stdout))
	}

	var store *storage.Store
	if !flagNoDB {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open results database", "error", err)
			store = nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Restore default handling so a second interrupt kills the process.
		<-ctx.Done()
		stop()
	}()

	runErr := playGames(ctx, m, store, seed)

	if store != nil {
		store.Close()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		exitf("%v", runErr)
	}
}

// playGames runs flagGames games on m, resetting the field between them,
// and records every finished game.
func playGames(ctx context.Context, m *match.Match, store *storage.Store, seed int64) error {
	tally := make(map[field.Symbol]int)

	for i := 0; i < flagGames; i++ {
		if i > 0 {
			m.Reset()
		}

		outcome, err := m.Run(ctx)
		if err != nil {
			if outcome.Reason == match.ReasonCancelled {
				fmt.Println("cancelled")
			}
			return err
		}

		if flagGames > 1 {
			fmt.Printf("game %d: %s\n", i+1, outcome)
		} else {
			fmt.Println(outcome)
		}
		tally[outcome.Winner]++

		if store != nil {
			if _, err := store.SaveResult(storage.NewResult(presetName(), seed, m.State(), outcome)); err != nil {
				return err
			}
		}
	}

	if flagGames > 1 {
		fmt.Println()
		x, o := m.Player(field.PlayerX).Name(), m.Player(field.PlayerO).Name()
		fmt.Printf("X (%s): %d  O (%s): %d  draws: %d\n",
			x, tally[field.PlayerX], o, tally[field.PlayerO], tally[field.Empty])
	}
	return nil
}
