package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagScoresPack string
	flagLimit      int
	flagClear      bool
	flagBrowse     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs of a pack",
	Long: `Display the best finished runs of a level pack.

Examples:
  maze scores
  maze scores --pack custom --limit 20
  maze scores --browse
  maze scores --pack classic --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPack, "pack", "classic", "Level pack")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the pack")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	requirePack(flagScoresPack)

	store, err := storage.Open(context.Background(), flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagBrowse {
		w, h := terminalSize()
		if err := tui.RunScoreboard(store, flagScoresPack, w, h); err != nil {
			exitf("%v", err)
		}
		return
	}

	ctx := context.Background()

	if flagClear {
		if err := store.ClearRuns(ctx, flagScoresPack); err != nil {
			exitf("clearing runs: %v", err)
		}
		fmt.Printf("Cleared all runs of %s\n", flagScoresPack)
		return
	}

	title := flagScoresPack
	if catalog, err := registry.Create(flagScoresPack); err == nil {
		title = catalog.Title()
	}

	runs, err := store.TopRuns(ctx, flagScoresPack, flagLimit)
	if err != nil {
		exitf("retrieving runs: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'maze play --pack %s' to set the first high score!\n", flagScoresPack)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Levels", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-6d  %-6d  %-6s  %s\n",
			i+1, r.Player, r.Score, r.Levels,
			fmt.Sprintf("%ds", r.Seconds),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(ctx, flagScoresPack); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Avg: %.0f   Fastest: %ds\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.BestSeconds)
	} else {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
	}
}
