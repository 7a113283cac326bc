package match3

import "math/rand"

// EffectContext is the read-only input of an effect function.
type EffectContext struct {
	Board *Board
	Rand  *rand.Rand
	// Pair is the ordinary kind a rainbow was swapped with, or KindRandom.
	Pair Kind
}

// EffectFunc returns the cells a special tile affects when it activates.
// Positions may be off the board; the resolver clips them.
type EffectFunc func(t *Tile, ctx EffectContext) []Position

// Effects maps each special kind to its effect.
var Effects = map[Kind]EffectFunc{
	KindBomb:       bombEffect,
	KindLaserV:     columnEffect,
	KindLaserH:     rowEffect,
	KindLaserCross: crossEffect,
	KindElectric:   electricEffect,
	KindRainbow:    rainbowEffect,
}

func bombEffect(t *Tile, _ EffectContext) []Position {
	cells := make([]Position, 0, 9)
	for r := t.Row - 1; r <= t.Row+1; r++ {
		for c := t.Col - 1; c <= t.Col+1; c++ {
			cells = append(cells, Position{Row: r, Col: c})
		}
	}
	return cells
}

func columnEffect(t *Tile, ctx EffectContext) []Position {
	cells := make([]Position, 0, ctx.Board.Height)
	for r := 0; r < ctx.Board.Height; r++ {
		cells = append(cells, Position{Row: r, Col: t.Col})
	}
	return cells
}

func rowEffect(t *Tile, ctx EffectContext) []Position {
	cells := make([]Position, 0, ctx.Board.Width)
	for c := 0; c < ctx.Board.Width; c++ {
		cells = append(cells, Position{Row: t.Row, Col: c})
	}
	return cells
}

func crossEffect(t *Tile, ctx EffectContext) []Position {
	return append(rowEffect(t, ctx), columnEffect(t, ctx)...)
}

// electricEffect picks one ordinary kind present on the board, once per
// activation, and hits every tile of it.
func electricEffect(t *Tile, ctx EffectContext) []Position {
	present := ctx.Board.OrdinaryPresent()
	if len(present) == 0 {
		return nil
	}
	return kindCells(ctx.Board, present[ctx.Rand.Intn(len(present))])
}

// rainbowEffect hits every tile of the paired kind plus the rainbow itself.
// Without a pair it behaves like electric.
func rainbowEffect(t *Tile, ctx EffectContext) []Position {
	var cells []Position
	if ctx.Pair.IsOrdinary() {
		cells = kindCells(ctx.Board, ctx.Pair)
	} else {
		cells = electricEffect(t, ctx)
	}
	return append(cells, t.Pos())
}

func kindCells(b *Board, k Kind) []Position {
	var cells []Position
	for _, t := range b.tiles {
		if t.Kind == k && t.Row >= 0 {
			cells = append(cells, t.Pos())
		}
	}
	return cells
}

// Activation is a special tile triggered by the player's swap.
type Activation struct {
	Tile *Tile
	Pair Kind
}

// DestroySet is the ordered set of tiles slated for removal in one
// resolution step.
type DestroySet struct {
	order  []*Tile
	ids    map[int]bool
	direct map[int]bool
}

// NewDestroySet creates an empty set.
func NewDestroySet() *DestroySet {
	return &DestroySet{
		ids:    make(map[int]bool),
		direct: make(map[int]bool),
	}
}

// Add inserts t. direct marks a line-match member. Returns false if t was
// already present.
func (s *DestroySet) Add(t *Tile, direct bool) bool {
	if s.ids[t.ID] {
		return false
	}
	s.ids[t.ID] = true
	if direct {
		s.direct[t.ID] = true
	}
	s.order = append(s.order, t)
	return true
}

// Drop removes the tile with the given id.
func (s *DestroySet) Drop(id int) {
	if !s.ids[id] {
		return
	}
	delete(s.ids, id)
	delete(s.direct, id)
	for i, t := range s.order {
		if t.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether the tile with the given id is in the set.
func (s *DestroySet) Has(id int) bool {
	return s.ids[id]
}

// Direct reports whether the tile came from a line match.
func (s *DestroySet) Direct(id int) bool {
	return s.direct[id]
}

// Len returns the set size.
func (s *DestroySet) Len() int {
	return len(s.order)
}

// Tiles returns the members in insertion order.
func (s *DestroySet) Tiles() []*Tile {
	out := make([]*Tile, len(s.order))
	copy(out, s.order)
	return out
}

// IDs returns a copy of the member ids.
func (s *DestroySet) IDs() map[int]bool {
	out := make(map[int]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}

// Resolve builds the destroy set for one step: direct matches, the swap's
// activations, then every special reached by an effect, transitively.
// Each special activates at most once. Metal is never added.
func Resolve(b *Board, matches []*Tile, seeds []Activation, rng *rand.Rand, tr *Trace) *DestroySet {
	set := NewDestroySet()
	for _, t := range matches {
		set.Add(t, true)
	}

	queue := make([]*Tile, 0, len(seeds))
	pairs := make(map[int]Kind, len(seeds))
	for _, a := range seeds {
		if a.Tile == nil || !a.Tile.Kind.Destructible() {
			continue
		}
		set.Add(a.Tile, false)
		pairs[a.Tile.ID] = a.Pair
		queue = append(queue, a.Tile)
	}
	tr.Logf("Initial matches: %d, initial special activations: %d. Total to process: %d", len(matches), len(queue), set.Len())

	processed := make(map[int]bool)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if processed[t.ID] || !t.Kind.IsSpecial() {
			continue
		}
		processed[t.ID] = true

		pair, ok := pairs[t.ID]
		if !ok {
			pair = KindRandom
		}
		ctx := EffectContext{Board: b, Rand: rng, Pair: pair}
		added := 0
		for _, p := range Effects[t.Kind](t, ctx) {
			hit := b.At(p)
			if hit == nil || !hit.Kind.Destructible() {
				continue
			}
			if !set.Add(hit, false) {
				continue
			}
			added++
			if hit.Kind.IsSpecial() && !processed[hit.ID] {
				queue = append(queue, hit)
			}
		}
		tr.Logf("Activating special tile: %s at %s, %d more tiles", t.Kind, t.Pos(), added)
	}
	return set
}
