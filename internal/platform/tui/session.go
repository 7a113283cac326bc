package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// SessionConfig configures a SessionModel.
type SessionConfig struct {
	ID     string
	Levels []levels.Level
	Base   match3.Settings
	Store  *storage.Store
	FPS    int
	Logger *log.Logger
	Trace  bool // mirror game traces to Logger
	Width  int
	Height int
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel manages the full flow: menu -> game or scoreboard -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	config     SessionConfig
	screen     sessionScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	game       *Model
	lastErr    string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	return SessionModel{
		config: cfg,
		menu:   NewMenuModel(cfg.Levels, cfg.Base, cfg.Store, cfg.Width, cfg.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Width = wsm.Width
		m.config.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		lvls := append([]levels.Level{levels.Random(m.config.Base)}, m.config.Levels...)
		m.scoreboard = NewScoreboardModel(m.config.Store, lvls, m.config.Width, m.config.Height)
		m.screen = screenScores
		m.resetMenu()
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		base := m.config.Base
		if base.Seed == 0 {
			base.Seed = time.Now().UnixNano()
		}
		s := Session{
			Level: *selected,
			Base:  base,
			Store: m.config.Store,
			FPS:   m.config.FPS,
		}
		if m.config.Trace {
			s.Logger = m.config.Logger
		}
		game, err := NewModel(s)
		m.resetMenu()
		if err != nil {
			m.lastErr = err.Error()
			if m.config.Logger != nil {
				m.config.Logger.Error("cannot start level", "level", selected.ID, "error", err)
			}
			return m, nil
		}
		if m.config.Logger != nil {
			m.config.Logger.Info("game started", "level", selected.ID, "seed", base.Seed)
		}
		m.game = &game
		m.lastErr = ""
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if sb, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		if m.config.Logger != nil {
			st := m.game.Machine().Status()
			m.config.Logger.Info("game left", "level", m.game.session.Level.ID, "score", st.Score, "phase", st.Phase)
		}
		m.game = nil
		m.screen = screenMenu
		m.resetMenu()
		// Ticks from the old game stop because no new tick command is issued.
		return m, nil
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// resetMenu rebuilds the menu so best scores are fresh and flags cleared.
func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.config.Levels, m.config.Base, m.config.Store, m.config.Width, m.config.Height)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	view := m.menu.View()
	if m.lastErr != "" {
		view += "\n" + centerText(loseStyle.Render(m.lastErr), m.config.Width)
	}
	return view
}

// RunSession runs the menu-driven flow in the local terminal.
func RunSession(cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
