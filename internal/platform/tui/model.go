package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// speedSteps are the speeds the +/- keys cycle through.
var speedSteps = []float64{0.25, 0.5, 1, 2, 4}

// traceLines is how many trace lines the trace pane shows.
const traceLines = 12

// Session describes one game for the player.
type Session struct {
	Level  levels.Level
	Base   match3.Settings
	Store  *storage.Store // optional; finished games are saved here
	FPS    int
	Paused bool        // start paused, for stepping through a pass
	Logger *log.Logger // optional; receives the trace at debug level
}

// Model is the Bubble Tea model that plays one match-3 session.
type Model struct {
	session    Session
	machine    *match3.Machine
	keys       KeyMap
	help       help.Model
	cursor     match3.Position
	lastTick   time.Time
	showTrace  bool
	saved      bool // whether the current result has been stored
	lastRunID  string
	width      int
	height     int
	quitting   bool
	backToMenu bool
	standalone bool // no menu to go back to; back quits
}

// NewModel creates the engine for s and starts it.
func NewModel(s Session) (Model, error) {
	if s.FPS <= 0 {
		s.FPS = DefaultFPS
	}
	trace := match3.NewTrace(s.Logger)
	machine, err := s.Level.NewMachine(s.Base, match3.WithTrace(trace))
	if err != nil {
		return Model{}, err
	}
	machine.Start()
	if s.Paused {
		machine.Pause()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		session: s,
		machine: machine,
		keys:    DefaultKeyMap(),
		help:    h,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.machine.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = max(m.cursor.Row-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = min(m.cursor.Row+1, snap.Height-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = max(m.cursor.Col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = min(m.cursor.Col+1, snap.Width-1)

	case key.Matches(msg, m.keys.Select):
		m.machine.Select(m.cursor)

	case key.Matches(msg, m.keys.Pause):
		if m.machine.Status().Paused {
			m.machine.Resume()
		} else {
			m.machine.Pause()
		}

	case key.Matches(msg, m.keys.Step):
		m.machine.Step()
		m.saveResult()

	case key.Matches(msg, m.keys.Faster):
		m.shiftSpeed(1)
	case key.Matches(msg, m.keys.Slower):
		m.shiftSpeed(-1)

	case key.Matches(msg, m.keys.Restart):
		m.restart()

	case key.Matches(msg, m.keys.Trace):
		m.showTrace = !m.showTrace

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the engine clock by the wall time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		dt := now.Sub(m.lastTick)
		if dt > maxFrameStep {
			dt = maxFrameStep
		}
		if dt > 0 {
			m.machine.Advance(dt)
		}
	}
	m.lastTick = now
	m.saveResult()

	return m, tickCmd(m.session.FPS)
}

// shiftSpeed moves to the next or previous entry of speedSteps.
func (m *Model) shiftSpeed(dir int) {
	cur := m.machine.Status().Speed
	idx := 0
	for i, s := range speedSteps {
		if s <= cur {
			idx = i
		}
	}
	idx = min(max(idx+dir, 0), len(speedSteps)-1)
	//nolint:errcheck // speedSteps are all positive
	m.machine.SetSpeed(speedSteps[idx])
}

func (m *Model) restart() {
	paused := m.machine.Status().Paused
	if err := m.machine.Restart(nil); err != nil {
		if m.session.Logger != nil {
			m.session.Logger.Error("restart failed", "error", err)
		}
		return
	}
	m.machine.Start()
	if paused {
		m.machine.Pause()
	}
	m.saved = false
}

// saveResult stores the result once per finished game.
func (m *Model) saveResult() {
	if m.saved {
		return
	}
	res, ok := m.machine.Result()
	if !ok {
		return
	}
	m.saved = true
	if m.session.Store == nil {
		return
	}
	_, runID, err := m.session.Store.SaveResult(ResultEntry(m.session.Level.ID, m.machine, res))
	if err != nil {
		if m.session.Logger != nil {
			m.session.Logger.Warn("could not save result", "error", err)
		}
		return
	}
	m.lastRunID = runID
	if m.session.Logger != nil {
		m.session.Logger.Info("result saved", "level", m.session.Level.ID, "score", res.Score, "stars", res.Stars, "run", runID)
	}
}

// ResultEntry converts a finished session into a storage row.
func ResultEntry(levelID string, machine *match3.Machine, res match3.Result) storage.ResultEntry {
	return storage.ResultEntry{
		LevelID:   levelID,
		Mode:      machine.Settings().Mode.String(),
		Score:     res.Score,
		Stars:     res.Stars,
		Won:       res.Won(),
		MovesLeft: machine.Moves(),
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.machine.Status()
	title := m.session.Level.Name
	if title == "" {
		title = m.session.Level.ID
	}

	parts := []string{
		RenderBoard(m.machine.Snapshot(), m.cursor, st.Selected),
		RenderHUD(title, st, m.machine.Settings()),
	}
	if m.showTrace {
		parts = append(parts, RenderTrace(m.machine.Trace(), traceLines))
	}
	parts = append(parts, dimStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Machine returns the engine behind the model.
func (m Model) Machine() *match3.Machine {
	return m.machine
}

// Cursor returns the cursor position.
func (m Model) Cursor() match3.Position {
	return m.cursor
}

// LastRunID returns the run id of the last stored result, if any.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one session.
func Run(s Session) error {
	model, err := NewModel(s)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
