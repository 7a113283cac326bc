// Package match3 implements the board resolution engine for a tile-matching
// puzzle: match detection, special-tile effects, armored tiles, gravity,
// refill and the phase machine that sequences them.
// This package is UI-agnostic and deterministic for a given seed.
package match3

import "fmt"

// Kind is the integer tag of a tile.
// Ordinary kinds come first, then specials, then unique kinds.
type Kind int

// OrdinaryKinds is the number of ordinary (matchable) kinds.
const OrdinaryKinds = 6

const (
	KindRed Kind = iota
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindOrange

	KindBomb       // 3x3 blast
	KindLaserV     // clears its column
	KindLaserH     // clears its row
	KindLaserCross // clears row and column
	KindElectric   // clears one random ordinary kind
	KindRainbow    // clears the kind it is swapped with

	KindComplex // armored, configurable health
	KindMetal   // unswappable, indestructible
	KindStone   // armored, configurable health

	// KindRandom is a layout placeholder resolved by the generator.
	KindRandom Kind = -1
)

// IsOrdinary reports whether k participates in line matches.
func (k Kind) IsOrdinary() bool {
	return k >= 0 && k < KindBomb
}

// IsSpecial reports whether k produces an area/line/global effect.
func (k Kind) IsSpecial() bool {
	return k >= KindBomb && k <= KindRainbow
}

// IsUnique reports whether k is one of the armored/indestructible kinds.
func (k Kind) IsUnique() bool {
	return k >= KindComplex && k <= KindStone
}

// IsArmored reports whether k carries health.
func (k Kind) IsArmored() bool {
	return k == KindComplex || k == KindStone
}

// Swappable reports whether a tile of kind k may be selected or moved.
func (k Kind) Swappable() bool {
	return k != KindMetal
}

// Destructible reports whether any rule may remove a tile of kind k.
func (k Kind) Destructible() bool {
	return k != KindMetal
}

var kindNames = map[Kind]string{
	KindRed:        "red",
	KindGreen:      "green",
	KindBlue:       "blue",
	KindYellow:     "yellow",
	KindPurple:     "purple",
	KindOrange:     "orange",
	KindBomb:       "bomb",
	KindLaserV:     "laser_v",
	KindLaserH:     "laser_h",
	KindLaserCross: "laser_cross",
	KindElectric:   "electric",
	KindRainbow:    "rainbow",
	KindComplex:    "complex",
	KindMetal:      "metal",
	KindStone:      "stone",
	KindRandom:     "random",
}

// String returns the kind's config name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKindName looks up a kind by its config name.
func ParseKindName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Layout runes: digits for ordinary kinds, letters for the rest.
var kindRunes = map[Kind]rune{
	KindRed:        '0',
	KindGreen:      '1',
	KindBlue:       '2',
	KindYellow:     '3',
	KindPurple:     '4',
	KindOrange:     '5',
	KindBomb:       'B',
	KindLaserV:     'V',
	KindLaserH:     'H',
	KindLaserCross: 'X',
	KindElectric:   'E',
	KindRainbow:    'R',
	KindComplex:    'C',
	KindMetal:      'M',
	KindStone:      'S',
	KindRandom:     '.',
}

// Rune returns the layout character for k.
func (k Kind) Rune() rune {
	if r, ok := kindRunes[k]; ok {
		return r
	}
	return '?'
}

// ParseKind converts a layout character to a kind.
func ParseKind(r rune) (Kind, bool) {
	for k, kr := range kindRunes {
		if kr == r {
			return k, true
		}
	}
	return 0, false
}

// Position is a grid cell. Row 0 is the top row.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether p and q share an edge.
func (p Position) Adjacent(q Position) bool {
	dr := p.Row - q.Row
	dc := p.Col - q.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Neighbors returns the four edge-adjacent positions, unclipped.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	}
}

// Tile is a single piece on the board.
// ID is stable for the tile's lifetime; Row may be negative while a new
// tile waits above the board to settle.
type Tile struct {
	ID   int
	Kind Kind
	Row  int
	Col  int

	// Transient presentation flags.
	Matched bool
	Hint    bool
	New     bool

	// Armored kinds only.
	Health    int
	MaxHealth int
}

// Pos returns the tile's current position.
func (t *Tile) Pos() Position {
	return Position{Row: t.Row, Col: t.Col}
}

// String returns a short description used in traces.
func (t *Tile) String() string {
	if t.Kind.IsArmored() {
		return fmt.Sprintf("id:%d %s hp:%d/%d @%s", t.ID, t.Kind, t.Health, t.MaxHealth, t.Pos())
	}
	return fmt.Sprintf("id:%d %s @%s", t.ID, t.Kind, t.Pos())
}

// Phase is the state of the resolution pipeline.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseIdle
	PhaseMatching
	PhaseRemoving
	PhaseGravity
	PhaseRefilling
	PhaseWin
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhaseIdle:
		return "IDLE"
	case PhaseMatching:
		return "MATCHING"
	case PhaseRemoving:
		return "REMOVING"
	case PhaseGravity:
		return "GRAVITY"
	case PhaseRefilling:
		return "REFILLING"
	case PhaseWin:
		return "WIN"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions happen until a restart.
func (p Phase) Terminal() bool {
	return p == PhaseWin || p == PhaseGameOver
}
