package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the levels of the campaign in play order.

With --levels-dir the levels are read from that directory instead of the
builtin campaign.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate level files",
	Long: `Loads every level file and reports the ones that are rejected,
with the reason. Exits with an error when any file is invalid.

Examples:
  sortlane levels check
  sortlane levels check --levels-dir ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevelsCheck,
}

func init() {
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lvls) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Campaign levels:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-16s  %5s  %6s  %5s  %s\n", maxIDLen, "ID", "Name", "Lanes", "Target", "Time", "Categories")
	fmt.Fprintf(out, "  %-*s  %-16s  %5s  %6s  %5s  %s\n", maxIDLen, "--", "----", "-----", "------", "----", "----------")

	for _, l := range lvls {
		cats := make([]string, len(l.Config.AllowedCategories))
		for i, c := range l.Config.AllowedCategories {
			cats[i] = c.String()
		}
		fmt.Fprintf(out, "  %-*s  %-16s  %5d  %6d  %4.0fs  %s\n",
			maxIDLen, l.ID, l.Name,
			l.Config.LaneCount, l.Config.TargetItemCount, l.Config.TimeLimitSeconds,
			strings.Join(cats, ", "),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'sortlane play <id>' to start from a level.")
	return nil
}

func runLevelsCheck(cmd *cobra.Command, _ []string) error {
	loader := levelLoader()
	problems, err := loader.Check()
	if err != nil {
		return err
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range problems {
		fmt.Fprintf(out, "  FAIL  %v\n", p)
	}
	fmt.Fprintf(out, "%d valid, %d invalid\n", len(lvls), len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%d invalid level file(s)", len(problems))
	}
	return nil
}
