package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagSpeed float64
	flagStep  bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level id an interactive menu lists the
random board and every level.

Controls:
  Arrows/hjkl  - Move cursor
  Space/Enter  - Select a tile, then a neighbour to swap
  P            - Pause/resume
  N            - Advance one step while paused
  +/-          - Change speed
  R            - Restart
  T            - Show trace
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  match3 play
  match3 play lvl02
  match3 play random --seed 42 --difficulty hard
  match3 play lvl03 --step --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Game speed multiplier (0 = config value)")
	playCmd.Flags().BoolVar(&flagStep, "step", false, "Start paused for step-by-step play")
}

func runPlay(cmd *cobra.Command, args []string) error {
	base, err := baseSettings(resolveSeed(flagSeed))
	if err != nil {
		return err
	}
	if flagSpeed < 0 {
		return fmt.Errorf("speed must be positive, got %v", flagSpeed)
	}
	if flagSpeed > 0 {
		base.Timing.Speed = flagSpeed
	}

	logger := newLogger("match3")

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 0 {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		lvls, err := levelLoader().LoadAll()
		if err != nil {
			return err
		}
		// Each menu pick draws its own seed unless one was given.
		menuBase := base
		menuBase.Seed = flagSeed
		sc := tui.SessionConfig{
			ID:     "local",
			Levels: lvls,
			Base:   menuBase,
			Store:  store,
			FPS:    flagFPS,
			Trace:  flagDebug,
			Width:  width,
			Height: height,
		}
		if flagDebug {
			sc.Logger = logger
		}
		return tui.RunSession(sc)
	}

	lvl, err := findLevel(args[0], base)
	if err != nil {
		return err
	}
	session := tui.Session{
		Level:  lvl,
		Base:   base,
		Store:  store,
		FPS:    flagFPS,
		Paused: flagStep,
	}
	if flagDebug {
		session.Logger = logger
	}
	logger.Debug("starting game", "level", lvl.ID, "seed", base.Seed, "speed", base.Timing.Speed)
	return tui.Run(session)
}
