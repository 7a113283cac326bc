package match3

// Compact drops the settled tiles of every column against the bottom edge,
// keeping their vertical order. Returns how many tiles moved.
func Compact(b *Board, tr *Trace) int {
	moved := 0
	for c := 0; c < b.Width; c++ {
		col := b.Column(c)
		target := b.Height - 1
		for i := len(col) - 1; i >= 0; i-- {
			t := col[i]
			if t.Row < 0 {
				break
			}
			if t.Row != target {
				tr.Logf("Tile %d moving from row %d to %d", t.ID, t.Row, target)
				t.Row = target
				moved++
			}
			target--
		}
	}
	return moved
}

// Shortfall returns the number of empty cells in column c, counting tiles
// waiting above the board as present.
func Shortfall(b *Board, c int) int {
	return b.Height - len(b.Column(c))
}
