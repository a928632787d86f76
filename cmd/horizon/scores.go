package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/split-horizon/internal/registry"
	"github.com/vovakirdan/split-horizon/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the furthest runs of a level",
	Long: `Display the top 10 runs by distance for the specified level,
followed by the level's totals.

Examples:
  horizon scores ground
  horizon scores mirrored`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := args[0]

	// Check if level exists
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'horizon list' to see available levels.")
		os.Exit(1)
	}

	level, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}
	title := level.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}

	runs, err := store.TopRuns(levelID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("Furthest Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'horizon play %s' to set the first one!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-5s  %s\n", "Rank", "Distance", "Result", "Flips", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-5s  %s\n", "----", "--------", "------", "-----", "----")

	for i, r := range runs {
		result := "crashed"
		if r.Completed {
			result = "cleared"
		}
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10.1f  %-8s  %-5d  %s\n", i+1, r.Distance, result, r.Flips, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(levelID); err == nil {
		fmt.Printf("Best score: %d\n", best)
	}
	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Printf("Runs: %d  Cleared: %d  Avg distance: %.1f  Flips: %d\n",
			stats.RunsCount, stats.Completions, stats.AvgDistance, stats.TotalFlips)
	}
}
