package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best results",
	Long: `Display the best results for a level, or a summary of every level
played so far.

Examples:
  match3 scores
  match3 scores lvl01
  match3 scores random --limit 20
  match3 scores --interactive
  match3 scores lvl01 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the level")
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		lvls, err := levelLoader().LoadAll()
		if err != nil {
			return err
		}
		base, err := baseSettings(1)
		if err != nil {
			return err
		}
		lvls = append([]levels.Level{levels.Random(base)}, lvls...)
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err = tui.RunScoreboard(store, lvls, width, height)
		return err
	}

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a level id")
		}
		return printSummary(cmd, store)
	}
	levelID := args[0]

	if flagClear {
		if err := store.ClearResults(levelID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared results for %s\n", levelID)
		return nil
	}

	results, err := store.TopResults(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", levelID)
	if len(results) == 0 {
		fmt.Fprintln(out, "No results recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'match3 play %s' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-6s  %s\n", "Rank", "Score", "Stars", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-5d  %-6s  %s\n", i+1, r.Score, r.Stars, outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestScore(levelID)
	if err == nil {
		fmt.Fprintf(out, "\nBest: %d\n", best)
	}
	return nil
}

func printSummary(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()
	stats, err := store.GetAllLevelsStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No results recorded yet.")
		return nil
	}

	recent, err := store.RecentResults(1)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  %-12s  %-5s  %-4s  %-8s  %s\n", "Level", "Plays", "Wins", "Best", "Last played")
	fmt.Fprintf(out, "  %-12s  %-5s  %-4s  %-8s  %s\n", "-----", "-----", "----", "----", "-----------")
	ids, err := levelLoader().ListIDs()
	if err != nil {
		return err
	}
	ids = append([]string{levels.RandomID}, ids...)
	seen := make(map[string]bool)
	for _, id := range ids {
		seen[id] = true
		if st, ok := stats[id]; ok {
			printStatsRow(cmd, st)
		}
	}
	// Results of levels that are no longer available.
	for id, st := range stats {
		if !seen[id] {
			printStatsRow(cmd, st)
		}
	}
	if len(recent) == 1 {
		fmt.Fprintf(out, "\nLast game: %s, score %d\n", recent[0].LevelID, recent[0].Score)
	}
	return nil
}

func printStatsRow(cmd *cobra.Command, st *storage.LevelStats) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %-12s  %-5d  %-4d  %-8d  %s\n",
		st.LevelID, st.Plays, st.Wins, st.BestScore, st.LastPlayed.Format("2006-01-02 15:04"))
}
