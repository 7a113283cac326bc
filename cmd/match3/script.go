package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
)

// Script is a headless game: a starting board and the swaps to play on it.
type Script struct {
	Level string   `yaml:"level"` // level id; empty means a random board
	Seed  int64    `yaml:"seed"`
	Rows  []string `yaml:"rows"` // explicit board, overrides the level layout
	Swaps [][4]int `yaml:"swaps"`
}

// SeedWith picks the session seed: an explicit flag wins over the script.
func (s Script) SeedWith(flag int64) int64 {
	return resolveSeed(flag, s.Seed)
}

// SwapReport records what one scripted swap did.
type SwapReport struct {
	From    [2]int `json:"from"`
	To      [2]int `json:"to"`
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
	Moves   int    `json:"moves"`
	Phase   string `json:"phase"`
}

// Report is the machine-readable result of a script run.
type Report struct {
	Level  string         `json:"level"`
	Seed   int64          `json:"seed"`
	Swaps  []SwapReport   `json:"swaps"`
	Score  int            `json:"score"`
	Moves  int            `json:"moves"`
	Phase  string         `json:"phase"`
	Stars  int            `json:"stars"`
	Won    bool           `json:"won"`
	Board  []string       `json:"board"`
	Trace  []string       `json:"trace,omitempty"`
	RunID  string         `json:"run_id,omitempty"`
	Result *match3.Result `json:"-"`
}

// LoadScript reads a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return s, nil
}

// newScriptMachine builds the session a script starts from.
func newScriptMachine(s Script, lvl levels.Level, base match3.Settings, opts ...match3.Option) (*match3.Machine, error) {
	if len(s.Rows) == 0 {
		return lvl.NewMachine(base, opts...)
	}
	settings := lvl.Apply(base)
	board, err := match3.BoardFromRows(s.Rows, settings.Generation)
	if err != nil {
		return nil, err
	}
	settings.Width, settings.Height = board.Width, board.Height
	return match3.NewMachine(settings, board, opts...)
}

// Play runs every swap to completion and reports the final state.
// Swaps after the game has ended are skipped.
func Play(s Script, machine *match3.Machine) Report {
	r := Report{Level: s.Level, Seed: machine.Settings().Seed}
	if r.Level == "" {
		r.Level = levels.RandomID
	}

	machine.Start()
	machine.Drain(0)
	for _, sw := range s.Swaps {
		if machine.Phase().Terminal() {
			break
		}
		from, to := match3.P(sw[0], sw[1]), match3.P(sw[2], sw[3])
		out := machine.Swap(from, to)
		machine.Drain(0)
		r.Swaps = append(r.Swaps, SwapReport{
			From:    [2]int{sw[0], sw[1]},
			To:      [2]int{sw[2], sw[3]},
			Outcome: out.String(),
			Score:   machine.Score(),
			Moves:   machine.Moves(),
			Phase:   machine.Phase().String(),
		})
	}

	r.Score = machine.Score()
	r.Moves = machine.Moves()
	r.Phase = machine.Phase().String()
	if res, ok := machine.Result(); ok {
		r.Stars = res.Stars
		r.Won = res.Won()
		r.Result = &res
	} else {
		r.Stars = machine.Settings().Thresholds.Stars(r.Score)
	}
	r.Board = strings.Split(machine.Snapshot().String(), "\n")
	r.Trace = machine.Trace().Lines()
	return r
}
