package match3

// MinRun is the shortest line of identical ordinary tiles that matches.
const MinRun = 3

// FindMatches returns every settled tile that belongs to a horizontal or
// vertical run of at least MinRun identical ordinary tiles.
// A tile in both a horizontal and a vertical run is returned once.
// Results are ordered by row, then column.
func FindMatches(b *Board) []*Tile {
	g := b.grid()
	hit := make([][]bool, b.Height)
	for r := range hit {
		hit[r] = make([]bool, b.Width)
	}

	// Rows
	for r := 0; r < b.Height; r++ {
		scanRun(b.Width, func(i int) *Tile { return g[r][i] }, func(i int) { hit[r][i] = true })
	}
	// Columns
	for c := 0; c < b.Width; c++ {
		scanRun(b.Height, func(i int) *Tile { return g[i][c] }, func(i int) { hit[i][c] = true })
	}

	var matches []*Tile
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			if hit[r][c] {
				matches = append(matches, g[r][c])
			}
		}
	}
	return matches
}

// scanRun walks one line of n cells and marks maximal qualifying runs.
func scanRun(n int, at func(int) *Tile, mark func(int)) {
	start := 0
	for start < n {
		t := at(start)
		if t == nil || !t.Kind.IsOrdinary() {
			start++
			continue
		}
		end := start + 1
		for end < n {
			next := at(end)
			if next == nil || next.Kind != t.Kind {
				break
			}
			end++
		}
		if end-start >= MinRun {
			for i := start; i < end; i++ {
				mark(i)
			}
		}
		start = end
	}
}

// HasMatches reports whether FindMatches would return anything.
func HasMatches(b *Board) bool {
	return len(FindMatches(b)) > 0
}
