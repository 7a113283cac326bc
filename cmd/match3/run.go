package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagJSON      bool
	flagShowTrace bool
	flagSave      bool
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Replay a swap script without a terminal UI",
	Long: `Play a scripted game headlessly. Every swap runs to completion
before the next one, so results depend only on the seed.

Script format:
  level: lvl02        # optional, default random board
  seed: 42            # optional, falls back to --seed
  rows:               # optional explicit board
    - "12021212"
    - "00303434"
  swaps:
    - [2, 2, 3, 2]    # row, col -> row, col

Examples:
  match3 run ./script.yaml
  match3 run ./script.yaml --json
  match3 run ./script.yaml --trace --save`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
	runCmd.Flags().BoolVar(&flagShowTrace, "trace", false, "Print the engine trace")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store a finished game in the results database")
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := LoadScript(args[0])
	if err != nil {
		return err
	}

	base, err := baseSettings(script.SeedWith(flagSeed))
	if err != nil {
		return err
	}
	lvl, err := findLevel(script.Level, base)
	if err != nil {
		return err
	}

	var tr *match3.Trace
	if flagDebug {
		tr = match3.NewTrace(newLogger("trace"))
	} else {
		tr = match3.NewTrace(nil)
	}
	machine, err := newScriptMachine(script, lvl, base, match3.WithTrace(tr))
	if err != nil {
		return err
	}

	report := Play(script, machine)
	if !flagShowTrace {
		report.Trace = nil
	}

	if flagSave && report.Result != nil {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		_, runID, err := store.SaveResult(tui.ResultEntry(lvl.ID, machine, *report.Result))
		if err != nil {
			return err
		}
		report.RunID = runID
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode report: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printReport(out, report)
	return nil
}

func printReport(out io.Writer, r Report) {
	fmt.Fprintf(out, "Level %s  seed %d\n\n", r.Level, r.Seed)
	for i, sw := range r.Swaps {
		fmt.Fprintf(out, "  %2d. (%d,%d) <-> (%d,%d)  %-8s score %-6d moves %-3d %s\n",
			i+1, sw.From[0], sw.From[1], sw.To[0], sw.To[1], sw.Outcome, sw.Score, sw.Moves, sw.Phase)
	}
	fmt.Fprintln(out)
	for _, row := range r.Board {
		fmt.Fprintf(out, "  %s\n", row)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score %d  Moves %d  Stars %d  %s\n", r.Score, r.Moves, r.Stars, r.Phase)
	if r.RunID != "" {
		fmt.Fprintf(out, "Saved as %s\n", r.RunID)
	}
	if len(r.Trace) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Join(r.Trace, "\n"))
	}
}
