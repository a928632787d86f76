// horizon is a gravity-flip runner for the terminal.
//
// Usage:
//
//	horizon list              - List the campaign levels
//	horizon play [level]      - Play a level (menu when no level is given)
//	horizon menu              - Start the level picker menu
//	horizon serve             - Start SSH server for remote play
//	horizon scores <level>    - Show the furthest runs of a level
//	horizon replay <file>     - Play back a recorded run headless
//	horizon sim <level>       - Run a level under the autopilot headless
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.horizon/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--config <path>      - Custom runner config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/runner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Split Horizon - a gravity-flip runner in your terminal",
	Long: `Split Horizon is a runner played on a ground and a ceiling track.
Flip gravity to switch surfaces and dodge the obstacles streaming in ahead.

Available commands:
  list     - Show the campaign levels
  play     - Play a level directly
  menu     - Interactive level picker menu
  serve    - Start SSH server for remote play
  scores   - View the furthest runs
  replay   - Play back a recorded run
  sim      - Headless autopilot smoke run

Examples:
  horizon list
  horizon play mirrored
  horizon play ground --difficulty hard --record run.hzr
  horizon replay run.hzr
  horizon serve --ssh :2222 --metrics :2112
  horizon sim classic --seconds 60`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && !validPreset(flagDifficulty) {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.horizon/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simCmd)
}

func validPreset(name string) bool {
	_, ok := config.ParsePreset(name)
	return ok
}
