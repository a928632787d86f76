package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/platform/tui"
	"github.com/vovakirdan/split-horizon/internal/registry"
	"github.com/vovakirdan/split-horizon/internal/runner"
	"github.com/vovakirdan/split-horizon/internal/storage"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level. Without a level the menu is shown.
Finishing a level offers the next one; the campaign wraps after the last.

Controls:
  Space        - Flip gravity
  A/D, ←/→     - Move sideways (arrows also enter cheat codes)
  P            - Pause
  Enter        - Continue to the next level
  R            - Restart from the first level played
  B/Esc        - Back (when paused or finished)
  Ctrl+S       - Screenshot to ~/.horizon/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest obstacle density, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  horizon play ground
  horizon play mirrored --difficulty hard
  horizon play ceiling --seed 42 --record run.hzr
  horizon play classic --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Save a replay of the run to this file")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run database, continuing without it on error.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'horizon list' to see available levels.")
		os.Exit(1)
	}

	logger, logFile, err := fileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	game, err := runner.Create(levelID, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, terminalConfig(), tui.Options{Store: store, Logger: logger}, flagRecord)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
		os.Exit(1)
	}
	if flagRecord != "" {
		fmt.Printf("Replay saved to %s\n", flagRecord)
	}
}
