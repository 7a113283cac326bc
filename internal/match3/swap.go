package match3

// Verdict classifies a proposed swap.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictEmpty
	VerdictUnswappable
	VerdictNotAdjacent
	VerdictNoEffect
)

// String returns a short description of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictEmpty:
		return "empty cell"
	case VerdictUnswappable:
		return "unswappable tile"
	case VerdictNotAdjacent:
		return "not adjacent"
	case VerdictNoEffect:
		return "no match and no special"
	default:
		return "unknown"
	}
}

// SwapPlan is the result of checking a swap without committing it.
type SwapPlan struct {
	Verdict Verdict
	A, B    *Tile
	// Exchange is false for a rainbow paired with an ordinary tile: the
	// rainbow fires in place.
	Exchange bool
	Matches  int
	Seeds    []Activation
}

// Valid reports whether the swap is legal.
func (p SwapPlan) Valid() bool {
	return p.Verdict == VerdictOK
}

// PlanSwap checks swapping the tiles at a and c. The board is left as it
// was.
func PlanSwap(b *Board, a, c Position) SwapPlan {
	ta, tc := b.At(a), b.At(c)
	plan := SwapPlan{A: ta, B: tc}
	switch {
	case ta == nil || tc == nil:
		plan.Verdict = VerdictEmpty
		return plan
	case !ta.Kind.Swappable() || !tc.Kind.Swappable():
		plan.Verdict = VerdictUnswappable
		return plan
	case !a.Adjacent(c):
		plan.Verdict = VerdictNotAdjacent
		return plan
	}

	if ta.Kind == KindRainbow && tc.Kind.IsOrdinary() {
		plan.Seeds = []Activation{{Tile: ta, Pair: tc.Kind}}
		return plan
	}
	if tc.Kind == KindRainbow && ta.Kind.IsOrdinary() {
		plan.Seeds = []Activation{{Tile: tc, Pair: ta.Kind}}
		return plan
	}

	b.exchange(ta, tc)
	plan.Matches = len(FindMatches(b))
	b.exchange(ta, tc)

	triggers := (ta.Kind.IsSpecial() && ta.Kind != KindRainbow) ||
		(tc.Kind.IsSpecial() && tc.Kind != KindRainbow)
	if plan.Matches == 0 && !triggers {
		plan.Verdict = VerdictNoEffect
		return plan
	}
	plan.Exchange = true
	for _, t := range []*Tile{ta, tc} {
		if t.Kind.IsSpecial() {
			plan.Seeds = append(plan.Seeds, Activation{Tile: t, Pair: KindRandom})
		}
	}
	return plan
}
