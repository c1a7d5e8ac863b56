package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortlane/internal/config"
	"github.com/vovakirdan/sortlane/internal/games/sortlane"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
	"github.com/vovakirdan/sortlane/internal/storage"
)

var (
	flagRecord  bool
	flagAll     bool
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim [level-id]",
	Short: "Run a level headless with the autoplayer",
	Long: `Runs a level without a terminal UI, letting the built-in autoplayer
place and remove classifiers, and prints the final stats.

Runs are deterministic for a given --seed, --fps and config, which makes
this useful for checking that a level file is solvable and for comparing
tuning changes. Generated endless levels can be run by ID
(endless-001, endless-002, ...).

Examples:
  sortlane sim 01-first-sort
  sortlane sim --all --seed 7
  sortlane sim endless-005 --difficulty hard
  sortlane sim 03-glass-house --record --verbose --log-level debug`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runSim,
}

func init() {
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save results to the scores database")
	simCmd.Flags().BoolVar(&flagAll, "all", false, "Run every campaign level")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every simulation event")
}

// simLevels resolves the levels a sim run covers.
func simLevels(args []string) ([]levels.Level, error) {
	if flagAll {
		return levelLoader().LoadAll()
	}

	id := args[0]
	if rest, ok := strings.CutPrefix(id, levels.EndlessPrefix); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid endless level %q", id)
		}
		return []levels.Level{levels.Endless(n-1, 0)}, nil
	}

	lvl, err := levelLoader().LoadByID(id)
	if err != nil {
		return nil, err
	}
	return []levels.Level{lvl}, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	lvls, err := simLevels(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadSortLane(flagConfig)
	if err != nil {
		return err
	}
	config.ApplySortLanePreset(&cfg, config.ParsePreset(flagDifficulty))
	tuning := cfg.Tuning()

	logger := newLogger("sortlane-sim")

	var recorder *storage.ResultRecorder
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = storage.NewResultRecorder(store, "sortlane", flagSeed)
	}

	step := time.Second / time.Duration(flagFPS)
	out := cmd.OutOrStdout()
	printSimHeader(out)

	failed := 0
	for _, lvl := range lvls {
		opts := []sim.Option{sim.WithTuning(tuning), sim.WithSeed(flagSeed)}
		if flagVerbose {
			opts = append(opts, sim.WithSink(sortlane.NewLogSink(logger.With("level", lvl.ID))))
		}
		if recorder != nil {
			opts = append(opts, sim.WithSink(recorder))
		}

		s, err := lvl.NewSimulation(opts...)
		if err != nil {
			return fmt.Errorf("level %s: %w", lvl.ID, err)
		}

		// One second of slack past the time limit so the timeout fires.
		maxTicks := int((lvl.Config.TimeLimit() + time.Second) / step)
		st := sim.RunHeadless(s, step, maxTicks)
		printSimRow(out, lvl.ID, st)
		if st.Status != sim.StatusComplete {
			failed++
		}
	}

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		fmt.Fprintf(out, "\nSaved %d result(s) under run %s\n", recorder.Saved(), recorder.RunID())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level(s) not completed", failed, len(lvls))
	}
	return nil
}

func printSimHeader(w io.Writer) {
	fmt.Fprintf(w, "  %-18s  %-8s  %6s  %7s  %9s  %7s  %7s  %5s  %7s\n",
		"Level", "Status", "Score", "Correct", "Incorrect", "Escaped", "Retries", "Acc", "Time")
	fmt.Fprintf(w, "  %-18s  %-8s  %6s  %7s  %9s  %7s  %7s  %5s  %7s\n",
		"-----", "------", "-----", "-------", "---------", "-------", "-------", "---", "----")
}

func printSimRow(w io.Writer, id string, st sim.Stats) {
	fmt.Fprintf(w, "  %-18s  %-8s  %6d  %4d/%-2d  %9d  %7d  %7d  %4.0f%%  %6.1fs\n",
		id, st.Status, st.Score, st.Correct, st.Target, st.Incorrect, st.Escaped, st.Retries,
		st.Accuracy(), st.Elapsed.Seconds())
}
