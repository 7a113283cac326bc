package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// kindStyles maps tile kinds to lipgloss styles.
var kindStyles = map[match3.Kind]lipgloss.Style{
	match3.KindRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	match3.KindGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	match3.KindBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	match3.KindYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	match3.KindPurple:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	match3.KindOrange:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	match3.KindBomb:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	match3.KindLaserV:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	match3.KindLaserH:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	match3.KindLaserCross: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	match3.KindElectric:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	match3.KindRainbow:    lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	match3.KindComplex:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	match3.KindMetal:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	match3.KindStone:      lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
}

var (
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57"))
	matchedStyle  = lipgloss.NewStyle().Reverse(true)
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	winStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// tileGlyph returns the single-cell symbol for a tile.
func tileGlyph(t match3.Tile) string {
	switch t.Kind {
	case match3.KindBomb:
		return "B"
	case match3.KindLaserV:
		return "|"
	case match3.KindLaserH:
		return "-"
	case match3.KindLaserCross:
		return "+"
	case match3.KindElectric:
		return "E"
	case match3.KindRainbow:
		return "*"
	case match3.KindMetal:
		return "#"
	case match3.KindComplex, match3.KindStone:
		if t.Health > 9 {
			return "9"
		}
		return fmt.Sprintf("%d", t.Health)
	}
	if t.Kind.IsOrdinary() {
		return "●"
	}
	return "?"
}

// RenderBoard draws the settled cells of a snapshot, three columns per
// cell. The cursor cell is bracketed; the selected cell is highlighted.
func RenderBoard(snap match3.Snapshot, cursor match3.Position, selected *match3.Position) string {
	grid := make([][]*match3.Tile, snap.Height)
	for r := range grid {
		grid[r] = make([]*match3.Tile, snap.Width)
	}
	for i := range snap.Tiles {
		t := &snap.Tiles[i]
		if t.Row >= 0 && t.Row < snap.Height && t.Col >= 0 && t.Col < snap.Width {
			grid[t.Row][t.Col] = t
		}
	}

	var sb strings.Builder
	for r, row := range grid {
		if r > 0 {
			sb.WriteRune('\n')
		}
		for c, t := range row {
			p := match3.P(r, c)
			left, right := " ", " "
			if p == cursor {
				left, right = "[", "]"
			}
			glyph := " "
			if t != nil {
				style, ok := kindStyles[t.Kind]
				if !ok {
					style = lipgloss.NewStyle()
				}
				if t.Matched {
					style = style.Inherit(matchedStyle)
				}
				glyph = style.Render(tileGlyph(*t))
			}
			cell := left + glyph + right
			if selected != nil && *selected == p {
				cell = selectedStyle.Render(cell)
			}
			sb.WriteString(cell)
		}
	}
	return boardStyle.Render(sb.String())
}

// RenderHUD draws the status lines under the board.
func RenderHUD(title string, st match3.Status, s match3.Settings) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteRune('\n')

	goal := fmt.Sprintf("Stars %d/%d/%d", s.Thresholds.Star1, s.Thresholds.Star2, s.Thresholds.Star3)
	if s.Mode == match3.ModeTarget {
		goal = fmt.Sprintf("Target %d", s.FinishScore)
	}
	line := fmt.Sprintf("Score %d  Moves %d  %s  Speed %.2gx  %s",
		st.Score, st.Moves, goal, st.Speed, st.Phase)
	if st.Chain > 1 {
		line += fmt.Sprintf("  Chain x%d", st.Chain)
	}
	if st.Paused {
		line += "  [PAUSED]"
	}
	sb.WriteString(hudStyle.Render(line))

	if st.Result != nil {
		sb.WriteRune('\n')
		sb.WriteString(renderResult(*st.Result))
	}
	return sb.String()
}

func renderResult(res match3.Result) string {
	stars := strings.Repeat("★", res.Stars) + strings.Repeat("☆", 3-res.Stars)
	if res.Won() {
		return winStyle.Render(fmt.Sprintf("YOU WIN! %s  Score %d  (r: play again)", stars, res.Score))
	}
	return loseStyle.Render(fmt.Sprintf("GAME OVER %s  Score %d  (r: try again)", stars, res.Score))
}

// RenderTrace shows the last n trace lines.
func RenderTrace(tr *match3.Trace, n int) string {
	lines := tr.Lines()
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
