// Package levels loads level definitions: board size, an optional initial
// layout and the session rules that go with it.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Level is a parsed level definition.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Moves       int
	Mode        match3.Mode
	FinishScore int
	Thresholds  match3.Thresholds
	Specials    []match3.Kind   // extra specials enabled for refills
	Layout      [][]match3.Kind // nil means fully random
	FilePath    string
}

// RandomID is the id of the level built from session settings alone.
const RandomID = "random"

// Random describes a fully random board that follows base as is.
func Random(base match3.Settings) Level {
	return Level{
		ID:          RandomID,
		Name:        "Random board",
		Width:       base.Width,
		Height:      base.Height,
		Moves:       base.Moves,
		Mode:        base.Mode,
		FinishScore: base.FinishScore,
		Thresholds:  base.Thresholds,
	}
}

// Validate checks the level on its own. Zero thresholds and moves are
// allowed; they fall back to the session config.
func (l Level) Validate() error {
	if l.Width < 1 || l.Height < 1 {
		return fmt.Errorf("level %s: size %dx%d", l.ID, l.Width, l.Height)
	}
	if l.Moves < 0 {
		return fmt.Errorf("level %s: negative moves", l.ID)
	}
	if l.Thresholds != (match3.Thresholds{}) {
		if err := l.Thresholds.Validate(); err != nil {
			return fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	if l.Mode == match3.ModeTarget && l.FinishScore <= 0 {
		return fmt.Errorf("level %s: target mode needs finish_score", l.ID)
	}
	return nil
}

// Apply overlays the level's rules on base settings.
func (l Level) Apply(base match3.Settings) match3.Settings {
	s := base
	s.Generation = base.Generation.Clone()
	s.Width = l.Width
	s.Height = l.Height
	if l.Moves > 0 {
		s.Moves = l.Moves
	}
	s.Mode = l.Mode
	s.FinishScore = l.FinishScore
	if l.Thresholds != (match3.Thresholds{}) {
		s.Thresholds = l.Thresholds
	}
	for _, k := range l.Specials {
		s.Generation.Specials[k] = true
	}
	return s
}

// NewMachine starts a session on this level.
func (l Level) NewMachine(base match3.Settings, opts ...match3.Option) (*match3.Machine, error) {
	opts = append([]match3.Option{match3.WithLayout(l.Layout)}, opts...)
	return match3.NewMachine(l.Apply(base), nil, opts...)
}

// Preview renders the layout with '.' for random cells.
func (l Level) Preview() []string {
	if l.Layout == nil {
		return nil
	}
	rows := make([]string, len(l.Layout))
	for r, row := range l.Layout {
		runes := make([]rune, len(row))
		for c, k := range row {
			runes[c] = k.Rune()
		}
		rows[r] = string(runes)
	}
	return rows
}
