package match3

import (
	"fmt"
	"sort"
	"strings"
)

// InvariantError reports a board state that can only come from a
// programming or integration error.
type InvariantError struct {
	Code    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Board is an unordered collection of tiles on a Width x Height grid.
// Settled tiles (Row >= 0) partition the rectangle with no duplicates.
type Board struct {
	Width  int
	Height int

	tiles  []*Tile
	nextID int
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		tiles:  make([]*Tile, 0, width*height),
	}
}

// Spawn creates a tile with a fresh id and adds it to the board.
// health is ignored for kinds that are not armored.
func (b *Board) Spawn(kind Kind, row, col, health int) *Tile {
	t := &Tile{
		ID:   b.nextID,
		Kind: kind,
		Row:  row,
		Col:  col,
	}
	b.nextID++
	if kind.IsArmored() {
		t.Health = health
		t.MaxHealth = health
	}
	b.tiles = append(b.tiles, t)
	return t
}

// Len returns the number of tiles, settled or not.
func (b *Board) Len() int {
	return len(b.tiles)
}

// Tiles returns the live tile list. Callers outside the package should
// prefer Snapshot.
func (b *Board) Tiles() []*Tile {
	return b.tiles
}

// InBounds reports whether p lies on the grid.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Height && p.Col >= 0 && p.Col < b.Width
}

// At returns the settled tile at p, or nil.
func (b *Board) At(p Position) *Tile {
	if !b.InBounds(p) {
		return nil
	}
	for _, t := range b.tiles {
		if t.Row == p.Row && t.Col == p.Col {
			return t
		}
	}
	return nil
}

// TileByID returns the tile with the given id, or nil.
func (b *Board) TileByID(id int) *Tile {
	for _, t := range b.tiles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// grid indexes settled tiles as [row][col].
func (b *Board) grid() [][]*Tile {
	g := make([][]*Tile, b.Height)
	for r := range g {
		g[r] = make([]*Tile, b.Width)
	}
	for _, t := range b.tiles {
		if b.InBounds(t.Pos()) {
			g[t.Row][t.Col] = t
		}
	}
	return g
}

// Column returns the tiles in column c ordered top to bottom,
// including unsettled tiles above the board.
func (b *Board) Column(c int) []*Tile {
	col := make([]*Tile, 0, b.Height)
	for _, t := range b.tiles {
		if t.Col == c {
			col = append(col, t)
		}
	}
	sort.SliceStable(col, func(i, j int) bool {
		return col[i].Row < col[j].Row
	})
	return col
}

// Remove deletes every tile whose id is in ids.
// Returns the number of tiles removed.
func (b *Board) Remove(ids map[int]bool) int {
	kept := b.tiles[:0]
	removed := 0
	for _, t := range b.tiles {
		if ids[t.ID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(b.tiles); i++ {
		b.tiles[i] = nil
	}
	b.tiles = kept
	return removed
}

// exchange swaps the positions of two tiles.
func (b *Board) exchange(x, y *Tile) {
	x.Row, y.Row = y.Row, x.Row
	x.Col, y.Col = y.Col, x.Col
}

// CountByKind counts settled tiles per kind.
func (b *Board) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, t := range b.tiles {
		if t.Row >= 0 {
			counts[t.Kind]++
		}
	}
	return counts
}

// OrdinaryPresent returns the ordinary kinds on the board, ascending.
func (b *Board) OrdinaryPresent() []Kind {
	counts := b.CountByKind()
	kinds := make([]Kind, 0, len(counts))
	for k, n := range counts {
		if k.IsOrdinary() && n > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		Width:  b.Width,
		Height: b.Height,
		tiles:  make([]*Tile, len(b.tiles)),
		nextID: b.nextID,
	}
	for i, t := range b.tiles {
		tc := *t
		c.tiles[i] = &tc
	}
	return c
}

// Validate checks the board invariants: unique ids, no tile below or beside
// the grid, at most one settled tile per cell.
func (b *Board) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return &InvariantError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("board size %dx%d", b.Width, b.Height),
		}
	}
	ids := make(map[int]bool, len(b.tiles))
	cells := make(map[Position]int, len(b.tiles))
	for _, t := range b.tiles {
		if ids[t.ID] {
			return &InvariantError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("tile id %d used twice", t.ID),
			}
		}
		ids[t.ID] = true

		if t.Col < 0 || t.Col >= b.Width || t.Row >= b.Height {
			return &InvariantError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("tile %d at %s outside %dx%d", t.ID, t.Pos(), b.Width, b.Height),
			}
		}
		if t.Row < 0 {
			if !t.New {
				return &InvariantError{
					Code:    "OUT_OF_BOUNDS",
					Message: fmt.Sprintf("settled tile %d at negative row %d", t.ID, t.Row),
				}
			}
			continue
		}
		if other, ok := cells[t.Pos()]; ok {
			return &InvariantError{
				Code:    "DUPLICATE_CELL",
				Message: fmt.Sprintf("tiles %d and %d share %s", other, t.ID, t.Pos()),
			}
		}
		cells[t.Pos()] = t.ID
	}
	return nil
}

// Full reports whether every cell holds a settled tile.
func (b *Board) Full() bool {
	settled := 0
	for _, t := range b.tiles {
		if t.Row >= 0 {
			settled++
		}
	}
	return settled == b.Width*b.Height && b.Validate() == nil
}

// Snapshot is an immutable copy of a board for renderers and tests.
type Snapshot struct {
	Width  int
	Height int
	Tiles  []Tile // ordered by row, then column
}

// Snapshot copies the board.
func (b *Board) Snapshot() Snapshot {
	tiles := make([]Tile, len(b.tiles))
	for i, t := range b.tiles {
		tiles[i] = *t
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		if tiles[i].Row != tiles[j].Row {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
	return Snapshot{Width: b.Width, Height: b.Height, Tiles: tiles}
}

// At returns the settled tile at p.
func (s Snapshot) At(p Position) (Tile, bool) {
	for _, t := range s.Tiles {
		if t.Row == p.Row && t.Col == p.Col {
			return t, true
		}
	}
	return Tile{}, false
}

// String renders the settled grid using layout runes, one row per line.
// Empty cells are shown as spaces.
func (s Snapshot) String() string {
	rows := make([][]rune, s.Height)
	for r := range rows {
		rows[r] = []rune(strings.Repeat(" ", s.Width))
	}
	for _, t := range s.Tiles {
		if t.Row >= 0 && t.Row < s.Height && t.Col >= 0 && t.Col < s.Width {
			rows[t.Row][t.Col] = t.Kind.Rune()
		}
	}
	lines := make([]string, s.Height)
	for r, row := range rows {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}

// ParseRows converts layout strings into kinds, one string per row.
// All rows must have the same length.
func ParseRows(rows []string) ([][]Kind, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("match3: empty layout")
	}
	width := len([]rune(rows[0]))
	layout := make([][]Kind, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("match3: layout row %d has %d cells, want %d", r, len(runes), width)
		}
		layout[r] = make([]Kind, width)
		for c, ch := range runes {
			k, ok := ParseKind(ch)
			if !ok {
				return nil, fmt.Errorf("match3: layout row %d col %d: unknown tile %q", r, c, ch)
			}
			layout[r][c] = k
		}
	}
	return layout, nil
}

// BoardFromRows builds a board from a fully specified layout.
// Armored tiles get their health from gen. Random placeholders are rejected;
// use Generator.Build for layouts containing them.
func BoardFromRows(rows []string, gen GenerationConfig) (*Board, error) {
	layout, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}
	b := NewBoard(len(layout[0]), len(layout))
	for r, row := range layout {
		for c, k := range row {
			if k == KindRandom {
				return nil, fmt.Errorf("match3: layout row %d col %d: random cell needs a generator", r, c)
			}
			b.Spawn(k, r, c, gen.InitialHealth(k))
		}
	}
	return b, nil
}
