package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/platform/tui"
	"github.com/vovakirdan/wallrow/internal/storage"
)

var (
	flagSide string
	flagBot  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play against a strategy",
	Long: `Play against a registered strategy in the terminal.

Controls:
  Arrows/hjkl/wasd - Move cursor
  Enter/Space      - Place your mark
  R                - New game
  ?                - More keys
  Q/Ctrl+C         - Quit

Examples:
  wallrow play
  wallrow play --side o --bot blocker
  wallrow play --preset gomoku
  wallrow play --preset walls --density dense --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSide, "side", "x", "Your side: x or o (x moves first)")
	playCmd.Flags().StringVar(&flagBot, "bot", "", "Opponent strategy (default from preset)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		exitf("play needs a terminal; use 'wallrow auto --x stdin' instead")
	}

	cfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}

	side, ok := field.ParseSymbol(flagSide)
	if !ok {
		exitf("--side must be x or o, got %q", flagSide)
	}
	if flagBot != "" {
		if side == field.PlayerX {
			cfg.Players.O = flagBot
		} else {
			cfg.Players.X = flagBot
		}
	}

	name := "human"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:    cfg,
		Preset:    presetName(),
		Seed:      flagSeed,
		Human:     side,
		HumanName: name,
		Store:     store,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("%v", runErr)
	}
}
