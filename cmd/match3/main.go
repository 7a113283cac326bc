// match3 is a terminal match-3 puzzle built on a deterministic board
// resolution engine.
//
// Usage:
//
//	match3 play [level]      - Play a level (menu if omitted)
//	match3 run <script>      - Replay a swap script headlessly
//	match3 levels            - List available levels
//	match3 scores [level]    - Show best results
//	match3 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/results.db)
//	--config <path>       - Session config YAML
//	--levels-dir <path>   - Load levels from a directory instead of the built-in set
//	--difficulty <preset> - easy, normal or hard
//	--debug               - Log the engine trace to stderr
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, chain cascades, chase stars",
	Long: `Match-3 is a terminal tile-matching puzzle.

Swap two neighbouring tiles to line up three or more of a kind. Special
tiles clear areas, lines or whole colours; armored tiles take several
hits; metal never breaks.

Available commands:
  play     - Play a level (interactive menu if no level is given)
  run      - Replay a swap script without a terminal UI
  levels   - Show all available levels
  scores   - View best results
  serve    - Start SSH server for remote play

Examples:
  match3 play
  match3 play lvl03 --speed 2
  match3 run ./script.yaml --json
  match3 scores lvl01
  match3 serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", tui.DefaultFPS, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom session config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level YAML files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log the engine trace to stderr (redirect with 2>file while playing)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the CLI logger; --debug lowers the level so the
// engine trace shows up.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// baseSettings loads the session config, applies the difficulty preset and
// converts it to engine settings.
func baseSettings(seed int64) (match3.Settings, error) {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return match3.Settings{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return match3.Settings{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg.ToSettings(seed)
}

// resolveSeed picks the first non-zero seed, falling back to the clock.
func resolveSeed(seeds ...int64) int64 {
	for _, s := range seeds {
		if s != 0 {
			return s
		}
	}
	return time.Now().UnixNano()
}

// levelLoader returns the loader for --levels-dir or the built-in set.
func levelLoader() *levels.Loader {
	return levels.NewLoader(flagLevelsDir)
}

// findLevel resolves a level id, including the random board.
func findLevel(id string, base match3.Settings) (levels.Level, error) {
	if id == "" || id == levels.RandomID {
		return levels.Random(base), nil
	}
	lvl, err := levelLoader().LoadByID(id)
	if err != nil {
		return levels.Level{}, fmt.Errorf("%w (run 'match3 levels' to see available levels)", err)
	}
	return lvl, nil
}
