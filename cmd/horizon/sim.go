package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/registry"
	"github.com/vovakirdan/split-horizon/internal/runner"
)

var flagSeconds float64

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a level under the autopilot headless",
	Long: `Drive a level with the built-in autopilot without a terminal UI and
print the generation stats. Useful to check config changes quickly.

Examples:
  horizon sim ground
  horizon sim mirrored --seconds 120 --seed 7
  horizon sim classic --config ./my-runner.yaml --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSeconds, "seconds", 30, "Simulated seconds to run")
}

func runSim(_ *cobra.Command, args []string) {
	levelID := args[0]
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'horizon list' to see available levels.")
		os.Exit(1)
	}
	if flagSeconds <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --seconds must be positive")
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "horizon-sim", log.WarnLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := runner.Create(levelID, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	st := runner.Simulate(game, runner.NewAutopilot(), flagSeconds)

	outcome := "running"
	switch {
	case st.Complete:
		outcome = "cleared"
	case st.GameOver:
		outcome = "crashed"
	}

	fmt.Printf("Simulated %s (seed %d)\n", game.Title(), seed)
	fmt.Println()
	fmt.Printf("  Outcome:     %s after %.1fs\n", outcome, st.SimTime)
	fmt.Printf("  Distance:    %.1f\n", st.Distance)
	fmt.Printf("  Flips:       %d\n", st.Flips)
	fmt.Printf("  Sections:    %d\n", st.Sections)
	fmt.Printf("  Placements:  %d (%d rare)\n", st.Placements, st.Rare)
	fmt.Printf("  Obstacles:   %d live, %d despawned\n", st.Live, st.Despawned)
}
