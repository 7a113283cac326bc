package match3

import "math/rand"

// SpecialSpawnChance is the probability that a refill tile is drawn from
// the enabled special kinds instead of the ordinary ones.
const SpecialSpawnChance = 0.05

// Generator draws tile kinds for initial boards and refills.
type Generator struct {
	cfg GenerationConfig
	rng *rand.Rand
}

// NewGenerator creates a generator. cfg is copied.
func NewGenerator(cfg GenerationConfig, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg.Clone(), rng: rng}
}

// Config returns the generation config in use.
func (g *Generator) Config() GenerationConfig {
	return g.cfg
}

// draw picks a refill kind. Panics if no ordinary kind is enabled; that
// state must be refused when the config is edited.
func (g *Generator) draw() Kind {
	ordinary := g.cfg.EnabledOrdinary()
	if len(ordinary) == 0 {
		panic(ErrNoOrdinaryKinds)
	}
	if specials := g.cfg.EnabledSpecials(); len(specials) > 0 && g.rng.Float64() < SpecialSpawnChance {
		return specials[g.rng.Intn(len(specials))]
	}
	return ordinary[g.rng.Intn(len(ordinary))]
}

// Refill fills every column's shortfall with new tiles stacked above the
// board at rows -1, -2, ... in generation order. Call SettleNew to drop them
// in.
func (g *Generator) Refill(b *Board, tr *Trace) []*Tile {
	var spawned []*Tile
	for c := 0; c < b.Width; c++ {
		missing := Shortfall(b, c)
		for i := 0; i < missing; i++ {
			k := g.draw()
			t := b.Spawn(k, -1-i, c, g.cfg.InitialHealth(k))
			t.New = true
			spawned = append(spawned, t)
		}
	}
	tr.Logf("Phase: REFILLING. Adding %d new tiles.", len(spawned))
	return spawned
}

// SettleNew moves waiting tiles into the topmost vacancies of their column,
// keeping the order they were stacked in, and clears their New flag.
func SettleNew(b *Board) int {
	waiting := make(map[int]int, b.Width)
	for _, t := range b.tiles {
		if t.New {
			waiting[t.Col]++
		}
	}
	settled := 0
	for _, t := range b.tiles {
		if !t.New {
			continue
		}
		t.Row += waiting[t.Col]
		t.New = false
		settled++
	}
	return settled
}

// Build creates a width x height board. layout may be nil (all random) or
// hold explicit kinds with KindRandom placeholders. Random cells only get
// ordinary kinds and avoid completing a triple with the two cells to their
// left or above.
func (g *Generator) Build(width, height int, layout [][]Kind) *Board {
	b := NewBoard(width, height)
	kinds := make([][]Kind, height)
	for r := 0; r < height; r++ {
		kinds[r] = make([]Kind, width)
		for c := 0; c < width; c++ {
			k := KindRandom
			if layout != nil && r < len(layout) && c < len(layout[r]) {
				k = layout[r][c]
			}
			if k == KindRandom {
				k = g.initialKind(kinds, r, c)
			}
			kinds[r][c] = k
			b.Spawn(k, r, c, g.cfg.InitialHealth(k))
		}
	}
	return b
}

func (g *Generator) initialKind(kinds [][]Kind, r, c int) Kind {
	ordinary := g.cfg.EnabledOrdinary()
	if len(ordinary) == 0 {
		panic(ErrNoOrdinaryKinds)
	}
	candidates := make([]Kind, 0, len(ordinary))
	for _, k := range ordinary {
		if c >= 2 && kinds[r][c-1] == k && kinds[r][c-2] == k {
			continue
		}
		if r >= 2 && kinds[r-1][c] == k && kinds[r-2][c] == k {
			continue
		}
		candidates = append(candidates, k)
	}
	if len(candidates) == 0 {
		candidates = ordinary
	}
	return candidates[g.rng.Intn(len(candidates))]
}
