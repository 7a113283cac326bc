package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// oneMoveLevel is an 8x8 layout where swapping (2,2) with (3,2) completes
// a run of four; one move and low thresholds make that swap a win.
func oneMoveLevel(t *testing.T) levels.Level {
	t.Helper()
	rows := make([]string, 8)
	for r := range rows {
		if r%2 == 0 {
			rows[r] = "12121212"
		} else {
			rows[r] = "34343434"
		}
	}
	rows[2] = "12021212"
	rows[3] = "00303434"
	layout, err := match3.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}
	return levels.Level{
		ID:         "one-move",
		Name:       "One Move",
		Width:      8,
		Height:     8,
		Moves:      1,
		Mode:       match3.ModeMoves,
		Thresholds: match3.Thresholds{Star1: 10, Star2: 20, Star3: 30},
		Layout:     layout,
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	base := match3.DefaultSettings()
	base.Seed = 7
	m, err := NewModel(Session{Level: oneMoveLevel(t), Base: base, Store: store})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestCursorMovementClamps(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Cursor() != match3.P(0, 0) {
		t.Errorf("Expected cursor (0,0), got %v", m.Cursor())
	}

	for range 20 {
		m = send(t, m, runeKey('j'), runeKey('l'))
	}
	if m.Cursor() != match3.P(7, 7) {
		t.Errorf("Expected cursor (7,7), got %v", m.Cursor())
	}
}

func TestSelectThenSwapWithKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeySpace},
	)
	st := m.Machine().Status()
	if st.Selected == nil || *st.Selected != match3.P(2, 2) {
		t.Fatalf("Expected (2,2) selected, got %v", st.Selected)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Machine().Moves() != 0 {
		t.Errorf("Expected swap to use the only move, got %d left", m.Machine().Moves())
	}
	if m.Machine().Phase() != match3.PhaseMatching {
		t.Errorf("Expected MATCHING, got %v", m.Machine().Phase())
	}
}

func TestPauseStepAndSpeedKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, runeKey('p'))
	if !m.Machine().Status().Paused {
		t.Error("Expected paused after p")
	}
	m = send(t, m, runeKey('p'))
	if m.Machine().Status().Paused {
		t.Error("Expected running after second p")
	}

	m = send(t, m, runeKey('+'))
	if got := m.Machine().Status().Speed; got != 2 {
		t.Errorf("Expected speed 2, got %v", got)
	}
	m = send(t, m, runeKey('-'), runeKey('-'), runeKey('-'), runeKey('-'), runeKey('-'))
	if got := m.Machine().Status().Speed; got != 0.25 {
		t.Errorf("Expected speed clamped at 0.25, got %v", got)
	}
}

func TestTicksFinishGameAndSaveResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace},
	)

	now := time.Unix(0, 0)
	for i := 0; i < 1000 && !m.Machine().Phase().Terminal(); i++ {
		m = send(t, m, TickMsg(now))
		now = now.Add(100 * time.Millisecond)
	}
	// One more tick so the result is stored.
	m = send(t, m, TickMsg(now))

	res, ok := m.Machine().Result()
	if !ok {
		t.Fatalf("Expected a finished game, phase %v", m.Machine().Phase())
	}
	if !res.Won() || res.Stars != 3 {
		t.Errorf("Expected 3-star win, got %+v", res)
	}
	if m.LastRunID() == "" {
		t.Error("Expected a run id for the stored result")
	}

	results, err := store.TopResults("one-move", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 stored result, got %d", len(results))
	}
	if results[0].Score != res.Score || !results[0].Won {
		t.Errorf("Stored result mismatch: %+v vs %+v", results[0], res)
	}

	// Further ticks must not store it again.
	m = send(t, m, TickMsg(now.Add(time.Second)))
	results, _ = store.TopResults("one-move", 10)
	if len(results) != 1 {
		t.Errorf("Expected result stored once, got %d", len(results))
	}

	// Restart allows the next game to be stored.
	m = send(t, m, runeKey('r'))
	if m.Machine().Phase() != match3.PhaseIdle || m.Machine().Moves() != 1 {
		t.Errorf("Expected fresh game after restart, got %v with %d moves", m.Machine().Phase(), m.Machine().Moves())
	}
}

func TestViewShowsBoardAndHUD(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, runeKey('t'))

	view := m.View()
	for _, want := range []string{"One Move", "Score 0", "Moves 1", "IDLE", "["} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestBackAndQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Expected BackToMenu after esc")
	}

	m = newTestModel(t, nil)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestSessionMenuStartsGame(t *testing.T) {
	base := match3.DefaultSettings()
	s := NewSessionModel(SessionConfig{
		ID:     "test",
		Levels: []levels.Level{oneMoveLevel(t)},
		Base:   base,
		Width:  80,
		Height: 24,
	})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s = next.(SessionModel)
	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)

	if s.screen != screenGame || s.game == nil {
		t.Fatalf("Expected game screen, got %v", s.screen)
	}
	if cmd == nil {
		t.Error("Expected tick command from the game")
	}
	if s.game.session.Level.ID != "one-move" {
		t.Errorf("Expected level one-move, got %s", s.game.session.Level.ID)
	}
	if s.game.session.Base.Seed == 0 {
		t.Error("Expected a per-game seed")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("Expected menu after leaving game, got %v", s.screen)
	}
}
