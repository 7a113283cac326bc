package match3

import "testing"

func TestFindMatches(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
		want []Position
	}{
		{
			name: "none",
			rows: []string{"010", "101", "010"},
		},
		{
			name: "row",
			rows: []string{"000", "121", "212"},
			want: []Position{P(0, 0), P(0, 1), P(0, 2)},
		},
		{
			name: "column",
			rows: []string{"120", "210", "120"},
			want: []Position{P(0, 2), P(1, 2), P(2, 2)},
		},
		{
			name: "cross shares a tile once",
			rows: []string{"101", "000", "202"},
			want: []Position{P(0, 1), P(1, 0), P(1, 1), P(1, 2), P(2, 1)},
		},
		{
			name: "run of four",
			rows: []string{"33331", "12121"},
			want: []Position{P(0, 0), P(0, 1), P(0, 2), P(0, 3)},
		},
		{
			name: "specials never match",
			rows: []string{"BBB", "SSS", "RRR"},
		},
		{
			name: "special breaks a run",
			rows: []string{"00B00", "12121"},
		},
	}

	for _, tc := range testCases {
		b := mustBoard(t, tc.rows...)
		got := FindMatches(b)
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %d matches, got %d", tc.name, len(tc.want), len(got))
			continue
		}
		for i, tile := range got {
			if tile.Pos() != tc.want[i] {
				t.Errorf("%s: match %d: expected %v, got %v", tc.name, i, tc.want[i], tile.Pos())
			}
		}
	}
}

func TestFindMatchesMembersAreRuns(t *testing.T) {
	b := mustBoard(t,
		"001110",
		"022232",
		"003234",
		"111254",
	)
	for _, tile := range FindMatches(b) {
		if !inRun(b, tile) {
			t.Errorf("tile %v is not in a run of %d", tile, MinRun)
		}
	}
}

func inRun(b *Board, t *Tile) bool {
	count := func(dr, dc int) int {
		n := 0
		for p := P(t.Row+dr, t.Col+dc); ; p = P(p.Row+dr, p.Col+dc) {
			o := b.At(p)
			if o == nil || o.Kind != t.Kind {
				return n
			}
			n++
		}
	}
	return count(0, -1)+count(0, 1)+1 >= MinRun || count(-1, 0)+count(1, 0)+1 >= MinRun
}

func TestFindMatchesIdempotent(t *testing.T) {
	b := mustBoard(t,
		"0001",
		"1230",
		"1230",
		"1231",
	)
	first := FindMatches(b)
	second := FindMatches(b)
	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("result %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if len(first) != 12 {
		t.Errorf("expected 12 matched tiles, got %d", len(first))
	}
}
