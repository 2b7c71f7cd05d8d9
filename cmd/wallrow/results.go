package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wallrow/internal/platform/tui"
	"github.com/vovakirdan/wallrow/internal/storage"
)

var (
	flagStats bool
	flagClear bool
	flagLimit int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded results",
	Long: `Display recently finished games, or per-strategy totals with --stats.
In a terminal the results open in a scrollable table; otherwise they are
printed as plain text.

Examples:
  wallrow results
  wallrow results --stats
  wallrow results --limit 50 | less
  wallrow results --clear`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show totals per strategy")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of games to print")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening results database: %v", err)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearResults()
		if err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Deleted %d results.\n", n)
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.RunResults(store, flagStats); err != nil {
			exitf("%v", err)
		}
		return
	}

	if flagStats {
		err = printStats(store)
	} else {
		err = printRecent(store)
	}
	if err != nil {
		exitf("%v", err)
	}
}

func printRecent(store *storage.Store) error {
	results, err := store.RecentResults(flagLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'wallrow auto' to record the first one!")
		return nil
	}

	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = tui.ResultRow(r)
	}
	printTable(tui.ResultColumns(), rows)
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.StrategyStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		rows[i] = tui.StatsRow(s)
	}
	printTable(tui.StatsColumns(), rows)
	return nil
}

// printTable prints rows as plain aligned text using the column widths of
// the interactive table.
func printTable(cols []table.Column, rows []table.Row) {
	header := make(table.Row, len(cols))
	rule := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		rule[i] = strings.Repeat("-", len(c.Title))
	}

	for _, row := range append([]table.Row{header, rule}, rows...) {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = fmt.Sprintf("%-*s", cols[i].Width, cell)
		}
		fmt.Printf("  %s\n", strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}
