package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [level]",
	Short: "List available levels",
	Long: `Shows every level, or the details and layout of one level.

Layout legend:
  0-5  ordinary tiles     B bomb   V/H/X lasers   E electric   R rainbow
  C complex   M metal   S stone   . random

Examples:
  match3 levels
  match3 levels lvl03
  match3 levels --levels-dir ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		for _, lvl := range lvls {
			if lvl.ID != args[0] {
				continue
			}
			fmt.Fprintf(out, "%s - %s\n", lvl.ID, lvl.Name)
			fmt.Fprintf(out, "  size      %dx%d\n", lvl.Width, lvl.Height)
			fmt.Fprintf(out, "  goal      %s\n", levelGoal(lvl.Mode, lvl.Moves, lvl.FinishScore))
			if lvl.Thresholds != (match3.Thresholds{}) {
				fmt.Fprintf(out, "  stars     %d / %d / %d\n", lvl.Thresholds.Star1, lvl.Thresholds.Star2, lvl.Thresholds.Star3)
			}
			if len(lvl.Specials) > 0 {
				names := make([]string, len(lvl.Specials))
				for i, k := range lvl.Specials {
					names[i] = k.String()
				}
				fmt.Fprintf(out, "  specials  %s\n", strings.Join(names, ", "))
			}
			if preview := lvl.Preview(); preview != nil {
				fmt.Fprintln(out)
				for _, row := range preview {
					fmt.Fprintf(out, "  %s\n", row)
				}
			}
			return nil
		}
		return fmt.Errorf("level not found: %s", args[0])
	}

	if len(lvls) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-18s  %-5s  %s\n", maxIDLen, "ID", "Name", "Size", "Goal")
	fmt.Fprintf(out, "  %-*s  %-18s  %-5s  %s\n", maxIDLen, "--", "----", "----", "----")
	for _, lvl := range lvls {
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		fmt.Fprintf(out, "  %-*s  %-18s  %-5s  %s\n", maxIDLen, lvl.ID, lvl.Name, size, levelGoal(lvl.Mode, lvl.Moves, lvl.FinishScore))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'match3 play <id>' to play a level.")
	return nil
}

func levelGoal(mode match3.Mode, moves, finish int) string {
	movesText := "config moves"
	if moves > 0 {
		movesText = fmt.Sprintf("%d moves", moves)
	}
	if mode == match3.ModeTarget {
		return fmt.Sprintf("reach %d in %s", finish, movesText)
	}
	return "stars in " + movesText
}
