package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []levels.Level
	best           map[string]*storage.LevelStats
	cursor         int
	width          int
	height         int
	quitting       bool
	selected       *levels.Level // Set when user selects a level
	openScoreboard bool          // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu listing a random board followed by lvls.
func NewMenuModel(lvls []levels.Level, base match3.Settings, store *storage.Store, width, height int) MenuModel {
	items := make([]levels.Level, 0, len(lvls)+1)
	items = append(items, levels.Random(base))
	items = append(items, lvls...)

	m := MenuModel{
		items:  items,
		width:  width,
		height: height,
	}
	if store != nil {
		// Missing stats only hide the best-score column.
		m.best, _ = store.GetAllLevelsStats()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M A T C H - 3  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		goal := fmt.Sprintf("%d moves", lvl.Moves)
		if lvl.Mode == match3.ModeTarget {
			goal = fmt.Sprintf("reach %d in %d moves", lvl.FinishScore, lvl.Moves)
		}
		line := fmt.Sprintf("%s%-16s %dx%d  %s", cursor, lvl.Name, lvl.Width, lvl.Height, goal)
		if st, ok := m.best[lvl.ID]; ok && st.Plays > 0 {
			line += fmt.Sprintf("  best %d", st.BestScore)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
