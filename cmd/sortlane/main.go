// sortlane is a terminal lane-sorting game: items ride conveyor lanes and
// the player places classifiers that pull each item into the right bin.
//
// Usage:
//
//	sortlane levels              - List campaign levels
//	sortlane levels check        - Validate level files
//	sortlane play [level-id]     - Play the campaign, optionally from a level
//	sortlane menu                - Interactive menu with level picker and scores
//	sortlane sim <level-id>      - Run a level headless with the autoplayer
//	sortlane scores [level-id]   - Show high scores and level results
//	sortlane serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.sortlane/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--levels-dir <dir>    - Load the campaign from a directory
//	--config <path>       - Custom engine config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortlane/internal/config"
	"github.com/vovakirdan/sortlane/internal/games/sortlane"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sortlane",
	Short: "SortLane - sort items on conveyor lanes in your terminal",
	Long: `SortLane is a terminal puzzle game. Items of different categories
travel along conveyor lanes; place classifiers on the lanes so every item
is pulled into the bin that accepts its category before it reaches the
end of its lane.

Available commands:
  levels   - List or validate campaign levels
  play     - Play the campaign directly
  menu     - Interactive menu with level picker and scoreboard
  sim      - Run a level headless with the built-in autoplayer
  scores   - View high scores and level results
  serve    - Start SSH server for remote play

Examples:
  sortlane levels
  sortlane play
  sortlane play 03-glass-house --difficulty hard
  sortlane sim 02-two-streams --seed 42
  sortlane serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyGlobalFlags,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sortlane/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files (default: builtin campaign)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGlobalFlags validates the shared flags and hands them to the game
// package before any game is created.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 || flagFPS > 240 {
		return fmt.Errorf("--fps must be between 1 and 240, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if _, err := parseLogLevel(flagLogLevel); err != nil {
		return err
	}

	sortlane.SetConfigPath(flagConfig)
	sortlane.SetDifficultyPreset(flagDifficulty)
	sortlane.SetLevelsDir(flagLevelsDir)
	return nil
}
