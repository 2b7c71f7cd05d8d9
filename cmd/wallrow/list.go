package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wallrow/internal/config"
	"github.com/vovakirdan/wallrow/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies and board presets",
	Long:  `Shows the registered player strategies and the built-in board presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	strategies := registry.List()

	fmt.Println("Strategies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		cfg, err := config.Load(p, "")
		if err != nil {
			continue
		}
		walls := "no walls"
		if cfg.HasObstacles() {
			walls = fmt.Sprintf("%.0f%% playable", cfg.Field.PlayableFraction*100)
		}
		fmt.Printf("  %-8s  %dx%d, %d in a row, %s\n",
			p, cfg.Board.Rows, cfg.Board.Cols, cfg.Board.WinLen, walls)
	}

	fmt.Println()
	fmt.Println("Densities:")
	for _, d := range config.Densities() {
		frac, _ := config.PlayableFractionFor(d)
		fmt.Printf("  %-8s  %.0f%% playable\n", d, frac*100)
	}

	fmt.Println()
	fmt.Println("Run 'wallrow auto --x <id> --o <id>' to watch two strategies play.")
}
