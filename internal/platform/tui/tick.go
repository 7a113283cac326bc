// Package tui provides the Bubble Tea player for match-3 sessions.
// It renders board snapshots, maps keys to engine input and drives the
// engine clock from frame ticks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per rendered frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// maxFrameStep caps how much engine time one frame may advance, so a
// stalled terminal does not fast-forward a whole cascade.
const maxFrameStep = 250 * time.Millisecond
