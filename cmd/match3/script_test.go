package main

import (
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
)

const testScript = `
seed: 3
rows:
  - "12121212"
  - "34343434"
  - "12021212"
  - "00303434"
  - "12121212"
  - "34343434"
  - "12121212"
  - "34343434"
swaps:
  - [0, 0, 0, 2]
  - [2, 2, 3, 2]
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(writeScript(t, testScript))
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	if s.Seed != 3 || len(s.Rows) != 8 || len(s.Swaps) != 2 {
		t.Errorf("Unexpected script: %+v", s)
	}
	if s.Swaps[1] != [4]int{2, 2, 3, 2} {
		t.Errorf("Expected second swap [2 2 3 2], got %v", s.Swaps[1])
	}

	if _, err := LoadScript(writeScript(t, "swaps: [[1, 2")); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected read error")
	}
}

func TestScriptSeedWith(t *testing.T) {
	tests := []struct {
		name   string
		script int64
		flag   int64
		want   int64
	}{
		{"flag wins", 3, 9, 9},
		{"script without flag", 3, 0, 3},
		{"flag without script", 0, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Script{Seed: tt.script}
			if got := s.SeedWith(tt.flag); got != tt.want {
				t.Errorf("SeedWith(%d) = %d, want %d", tt.flag, got, tt.want)
			}
		})
	}

	if got := (Script{}).SeedWith(0); got == 0 {
		t.Error("Expected a clock seed when neither is set")
	}
}

func TestPlayScript(t *testing.T) {
	s, err := LoadScript(writeScript(t, testScript))
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	base := match3.DefaultSettings()
	base.Seed = s.Seed

	machine, err := newScriptMachine(s, levels.Random(base), base, match3.WithTrace(match3.NewTrace(nil)))
	if err != nil {
		t.Fatalf("newScriptMachine() failed: %v", err)
	}
	r := Play(s, machine)

	if len(r.Swaps) != 2 {
		t.Fatalf("Expected 2 swap reports, got %d", len(r.Swaps))
	}
	if r.Swaps[0].Outcome != "invalid" {
		t.Errorf("Expected non-adjacent swap to be invalid, got %s", r.Swaps[0].Outcome)
	}
	if r.Swaps[1].Outcome != "accepted" {
		t.Errorf("Expected second swap accepted, got %s", r.Swaps[1].Outcome)
	}
	if r.Score < 40 {
		t.Errorf("Expected at least 40 points, got %d", r.Score)
	}
	if r.Moves != base.Moves-1 {
		t.Errorf("Expected %d moves, got %d", base.Moves-1, r.Moves)
	}
	if r.Phase != "IDLE" {
		t.Errorf("Expected IDLE, got %s", r.Phase)
	}
	if len(r.Board) != 8 || len(r.Board[0]) != 8 {
		t.Errorf("Expected 8x8 board, got %v", r.Board)
	}
	if len(r.Trace) == 0 {
		t.Error("Expected trace lines")
	}
	if r.Level != levels.RandomID {
		t.Errorf("Expected level %q, got %q", levels.RandomID, r.Level)
	}
}

func TestPlayScriptIsDeterministic(t *testing.T) {
	s, err := LoadScript(writeScript(t, testScript))
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	base := match3.DefaultSettings()
	base.Seed = 11

	var first []byte
	for i := 0; i < 2; i++ {
		machine, err := newScriptMachine(s, levels.Random(base), base)
		if err != nil {
			t.Fatalf("newScriptMachine() failed: %v", err)
		}
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(Play(s, machine))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if i == 0 {
			first = data
		} else if string(first) != string(data) {
			t.Errorf("Expected identical reports for the same seed:\n%s\n%s", first, data)
		}
	}
}

func TestPlayScriptStopsAtGameOver(t *testing.T) {
	s, err := LoadScript(writeScript(t, testScript))
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	// Only the accepted swap consumes the single move.
	s.Swaps = [][4]int{{2, 2, 3, 2}, {0, 0, 0, 1}}

	base := match3.DefaultSettings()
	base.Seed = 5
	base.Moves = 1
	machine, err := newScriptMachine(s, levels.Random(base), base)
	if err != nil {
		t.Fatalf("newScriptMachine() failed: %v", err)
	}
	r := Play(s, machine)

	if len(r.Swaps) != 1 {
		t.Errorf("Expected swaps after game end to be skipped, got %d reports", len(r.Swaps))
	}
	if r.Phase != "GAME_OVER" && r.Phase != "WIN" {
		t.Errorf("Expected a terminal phase, got %s", r.Phase)
	}
	if r.Result == nil {
		t.Error("Expected a result")
	}
}
