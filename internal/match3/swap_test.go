package match3

import "testing"

func TestPlanSwap(t *testing.T) {
	tests := []struct {
		name     string
		cells    map[Position]byte
		a, c     Position
		verdict  Verdict
		exchange bool
		matches  int
		seeds    int
	}{
		{
			name:    "no effect",
			a:       P(0, 0),
			c:       P(0, 1),
			verdict: VerdictNoEffect,
		},
		{
			name:    "not adjacent",
			a:       P(0, 0),
			c:       P(0, 2),
			verdict: VerdictNotAdjacent,
		},
		{
			name:    "diagonal",
			a:       P(0, 0),
			c:       P(1, 1),
			verdict: VerdictNotAdjacent,
		},
		{
			name:    "metal",
			cells:   map[Position]byte{P(0, 0): 'M'},
			a:       P(0, 0),
			c:       P(0, 1),
			verdict: VerdictUnswappable,
		},
		{
			name:     "completes a run",
			cells:    map[Position]byte{P(1, 1): '0'},
			a:        P(1, 1),
			c:        P(0, 1),
			verdict:  VerdictOK,
			exchange: true,
			matches:  3,
		},
		{
			name:     "special without match",
			cells:    map[Position]byte{P(2, 2): 'B'},
			a:        P(2, 2),
			c:        P(2, 3),
			verdict:  VerdictOK,
			exchange: true,
			seeds:    1,
		},
		{
			name:    "rainbow with ordinary fires in place",
			cells:   map[Position]byte{P(2, 2): 'R'},
			a:       P(2, 3),
			c:       P(2, 2),
			verdict: VerdictOK,
			seeds:   1,
		},
		{
			name:    "two rainbows need a match",
			cells:   map[Position]byte{P(2, 2): 'R', P(2, 3): 'R'},
			a:       P(2, 2),
			c:       P(2, 3),
			verdict: VerdictNoEffect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := checkerBoard(t, 6, 6, "010101", "343434")
			for p, ch := range tt.cells {
				setCell(rows, p.Row, p.Col, ch)
			}
			b := mustBoard(t, rows...)
			before := b.Snapshot().String()

			plan := PlanSwap(b, tt.a, tt.c)
			if plan.Verdict != tt.verdict {
				t.Fatalf("expected verdict %q, got %q", tt.verdict, plan.Verdict)
			}
			if plan.Valid() != (tt.verdict == VerdictOK) {
				t.Errorf("Valid() disagrees with verdict %q", plan.Verdict)
			}
			if plan.Exchange != tt.exchange {
				t.Errorf("expected exchange %v, got %v", tt.exchange, plan.Exchange)
			}
			if tt.matches > 0 && plan.Matches != tt.matches {
				t.Errorf("expected %d matches, got %d", tt.matches, plan.Matches)
			}
			if len(plan.Seeds) != tt.seeds {
				t.Errorf("expected %d seeds, got %d", tt.seeds, len(plan.Seeds))
			}
			if after := b.Snapshot().String(); after != before {
				t.Errorf("PlanSwap changed the board:\n%s\nvs\n%s", before, after)
			}
		})
	}
}

func TestPlanSwapRainbowPair(t *testing.T) {
	rows := checkerBoard(t, 6, 6, "010101", "343434")
	setCell(rows, 2, 2, 'R')
	b := mustBoard(t, rows...)

	plan := PlanSwap(b, P(2, 2), P(2, 3))
	if len(plan.Seeds) != 1 {
		t.Fatalf("expected one seed, got %d", len(plan.Seeds))
	}
	if plan.Seeds[0].Tile.Kind != KindRainbow || plan.Seeds[0].Pair != KindGreen {
		t.Errorf("expected rainbow paired with green, got %s/%s", plan.Seeds[0].Tile.Kind, plan.Seeds[0].Pair)
	}
}

func TestPlanSwapEmptyCell(t *testing.T) {
	b := mustBoard(t, checkerBoard(t, 4, 4, "0101", "3434")...)
	b.Remove(map[int]bool{b.At(P(0, 1)).ID: true})

	if v := PlanSwap(b, P(0, 0), P(0, 1)).Verdict; v != VerdictEmpty {
		t.Errorf("expected %q, got %q", VerdictEmpty, v)
	}
	if v := PlanSwap(b, P(0, 0), P(-1, 0)).Verdict; v != VerdictEmpty {
		t.Errorf("expected %q for off-board cell, got %q", VerdictEmpty, v)
	}
}
