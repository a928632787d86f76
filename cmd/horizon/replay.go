package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/split-horizon/internal/replay"
	"github.com/vovakirdan/split-horizon/internal/runner"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded run headless",
	Long: `Re-simulate a run recorded with 'horizon play --record' and print
where it ended. The recording carries its own seed and config, so the
global --seed, --config and --difficulty flags do not apply.

Examples:
  horizon replay run.hzr`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "horizon", log.WarnLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	snap, err := replay.Play(rec, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error playing replay: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %s\n", rec.ID)
	fmt.Println()
	fmt.Printf("  Level:     %s\n", rec.Level)
	fmt.Printf("  Recorded:  %s\n", rec.RecordedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Seed:      %d\n", rec.Seed)
	fmt.Printf("  Frames:    %d at %d fps (%s)\n", len(rec.Frames), rec.FPS, rec.Duration())
	fmt.Println()
	fmt.Printf("  Ended on:  level %d (%s), attempt %d\n", snap.Level, snap.LevelID, snap.Attempt)
	fmt.Printf("  State:     %s\n", snap.State)
	fmt.Printf("  Distance:  %.1f\n", snap.Z)
	fmt.Printf("  Score:     %d\n", snap.Score)
	fmt.Printf("  Sections:  %d (%d placements, %d rare)\n", snap.Sections, snap.Placements, snap.Rare)
}
