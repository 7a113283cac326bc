package match3

import (
	"math/rand"
	"testing"
)

func TestCompact(t *testing.T) {
	b := mustBoard(t,
		"012",
		"345",
		"BVH",
		"024",
	)
	top := b.At(P(0, 1)).ID
	mid := b.At(P(2, 1)).ID
	b.Remove(map[int]bool{
		b.At(P(1, 1)).ID: true,
		b.At(P(3, 1)).ID: true,
		b.At(P(3, 2)).ID: true,
	})

	moved := Compact(b, nil)
	if moved != 5 {
		t.Errorf("expected 5 moves, got %d", moved)
	}
	// Column 1 keeps its order against the bottom edge.
	if tile := b.TileByID(top); tile.Row != 2 {
		t.Errorf("expected top tile at row 2, got %d", tile.Row)
	}
	if tile := b.TileByID(mid); tile.Row != 3 {
		t.Errorf("expected middle tile at row 3, got %d", tile.Row)
	}
	if Shortfall(b, 0) != 0 || Shortfall(b, 1) != 2 || Shortfall(b, 2) != 1 {
		t.Errorf("unexpected shortfalls: %d %d %d", Shortfall(b, 0), Shortfall(b, 1), Shortfall(b, 2))
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestRefillAndSettle(t *testing.T) {
	b := mustBoard(t,
		"012",
		"345",
		"012",
	)
	b.Remove(map[int]bool{
		b.At(P(0, 0)).ID: true,
		b.At(P(1, 0)).ID: true,
		b.At(P(2, 2)).ID: true,
	})
	Compact(b, nil)

	gen := NewGenerator(DefaultGeneration(), rand.New(rand.NewSource(7)))
	spawned := gen.Refill(b, nil)
	if len(spawned) != 3 {
		t.Fatalf("expected 3 new tiles, got %d", len(spawned))
	}
	for _, tile := range spawned {
		if !tile.New || tile.Row >= 0 {
			t.Errorf("new tile %v should wait above the board", tile)
		}
		if !tile.Kind.IsOrdinary() {
			t.Errorf("refill with specials disabled produced %v", tile.Kind)
		}
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() with waiting tiles failed: %v", err)
	}

	// Column 0 got two tiles stacked at -1 and -2.
	lower, upper := spawned[0], spawned[1]
	SettleNew(b)
	if lower.Row != 1 || upper.Row != 0 {
		t.Errorf("expected settled rows 1 and 0, got %d and %d", lower.Row, upper.Row)
	}
	if spawned[2].Row != 0 || spawned[2].Col != 2 {
		t.Errorf("expected column 2 tile at (0,2), got %v", spawned[2].Pos())
	}
	if !b.Full() {
		t.Error("board should be full after settling")
	}
	if b.Len() != 9 {
		t.Errorf("expected 9 tiles, got %d", b.Len())
	}
	for _, tile := range b.Tiles() {
		if tile.New {
			t.Errorf("tile %v still marked new", tile)
		}
	}
}

func TestRefillPanicsWithoutOrdinaryKinds(t *testing.T) {
	b := NewBoard(2, 2)
	gen := NewGenerator(GenerationConfig{Ordinary: map[Kind]bool{}}, rand.New(rand.NewSource(1)))
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	gen.Refill(b, nil)
}

func TestRefillDrawsSpecials(t *testing.T) {
	cfg := DefaultGeneration()
	cfg.Specials[KindBomb] = true
	gen := NewGenerator(cfg, rand.New(rand.NewSource(3)))
	b := NewBoard(20, 20)
	gen.Refill(b, nil)

	bombs := b.CountByKind()[KindBomb]
	if bombs == 0 {
		// 400 draws at 5% each
		t.Error("expected some bombs in a large refill")
	}
	if bombs > 60 {
		t.Errorf("too many bombs: %d", bombs)
	}
}

func TestBuildAvoidsMatches(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		gen := NewGenerator(DefaultGeneration(), rand.New(rand.NewSource(seed)))
		b := gen.Build(8, 8, nil)
		if !b.Full() {
			t.Fatalf("seed %d: board not full", seed)
		}
		if HasMatches(b) {
			t.Errorf("seed %d: generated board has matches:\n%s", seed, b.Snapshot())
		}
	}
}

func TestBuildKeepsExplicitCells(t *testing.T) {
	layout, err := ParseRows([]string{
		"S..",
		".M.",
		"..B",
	})
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}
	gen := NewGenerator(DefaultGeneration(), rand.New(rand.NewSource(1)))
	b := gen.Build(3, 3, layout)

	if k := b.At(P(0, 0)).Kind; k != KindStone {
		t.Errorf("expected stone, got %v", k)
	}
	if h := b.At(P(0, 0)).Health; h != 2 {
		t.Errorf("expected stone health 2, got %d", h)
	}
	if k := b.At(P(1, 1)).Kind; k != KindMetal {
		t.Errorf("expected metal, got %v", k)
	}
	if k := b.At(P(2, 2)).Kind; k != KindBomb {
		t.Errorf("expected bomb, got %v", k)
	}
	if k := b.At(P(0, 1)).Kind; !k.IsOrdinary() {
		t.Errorf("random cell got %v", k)
	}
}
