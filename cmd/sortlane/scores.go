package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortlane/internal/registry"
	"github.com/vovakirdan/sortlane/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show high scores and level results",
	Long: `Without arguments, shows the best session scores of every game mode
and a summary of every level played. With a level ID, shows the best
completed attempts at that level.

Examples:
  sortlane scores
  sortlane scores 02-two-streams
  sortlane scores 02-two-streams --limit 20
  sortlane scores 02-two-streams --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored results for the level (all levels without an ID)")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearResults(levelID); err != nil {
			return err
		}
		if levelID == "" {
			fmt.Fprintln(out, "Cleared all level results.")
		} else {
			fmt.Fprintf(out, "Cleared results for %s.\n", levelID)
		}
		return nil
	}

	if levelID != "" {
		return printLevelScores(out, store, levelID)
	}
	return printOverview(out, store)
}

func printLevelScores(out io.Writer, store *storage.Store, levelID string) error {
	results, err := store.TopResults(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Best runs - %s\n\n", levelID)
	if len(results) == 0 {
		fmt.Fprintln(out, "No completed runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'sortlane play %s' to set the first score!\n", levelID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %s\n", "Rank", "Score", "Time", "Acc", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %s\n", "----", "-----", "----", "---", "----")
	for i, r := range results {
		fmt.Fprintf(out, "  %-4d  %-7d  %-7s  %-5s  %s\n",
			i+1, r.Score,
			fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
			fmt.Sprintf("%.0f%%", r.Accuracy()),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	sum, err := store.LevelSummary(levelID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Cleared %d of %d attempts\n", sum.Completions, sum.Attempts)
	}
	return nil
}

func printOverview(out io.Writer, store *storage.Store) error {
	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)
	for _, g := range registry.List() {
		stats, err := store.GetGameStats(g.ID)
		if err != nil {
			return err
		}
		if stats.GamesCount == 0 {
			fmt.Fprintf(out, "  %-20s  no games yet\n", g.Title)
			continue
		}
		fmt.Fprintf(out, "  %-20s  best %-7d  games %-4d  avg %.0f\n",
			g.Title, stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	summaries, err := store.AllLevelSummaries()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Levels")
	fmt.Fprintln(out)

	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}
	for _, lvl := range lvls {
		sum, ok := summaries[lvl.ID]
		if !ok {
			fmt.Fprintf(out, "  %-18s  not played\n", lvl.ID)
			continue
		}
		best := "-"
		if sum.BestTime > 0 {
			best = fmt.Sprintf("%.1fs", sum.BestTime.Seconds())
		}
		fmt.Fprintf(out, "  %-18s  best %-7d  fastest %-7s  cleared %d/%d\n",
			lvl.ID, sum.BestScore, best, sum.Completions, sum.Attempts)
	}
	return nil
}
