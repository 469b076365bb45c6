package game

// GridColumns is the fixed column count of the board layout.
const GridColumns = 3

// Dimensions returns the grid shape for a board of n cards. The last row may be partial.
func Dimensions(n int) (rows, cols int) {
	if n <= 0 {
		return 0, GridColumns
	}
	return (n + GridColumns - 1) / GridColumns, GridColumns
}

// AdjacentIndices returns the in-bounds up/down/left/right neighbors of i.
// Left and right neighbors never wrap across rows. Out-of-range i yields nil.
func AdjacentIndices(i, n int) []int {
	if i < 0 || i >= n {
		return nil
	}
	col := i % GridColumns
	out := make([]int, 0, 4)
	if up := i - GridColumns; up >= 0 {
		out = append(out, up)
	}
	if down := i + GridColumns; down < n {
		out = append(out, down)
	}
	if col > 0 {
		out = append(out, i-1)
	}
	if col < GridColumns-1 && i+1 < n {
		out = append(out, i+1)
	}
	return out
}

// LineIndices returns every index in i's row (isRow) or column.
// Out-of-range i yields nil.
func LineIndices(i, n int, isRow bool) []int {
	if i < 0 || i >= n {
		return nil
	}
	var out []int
	if isRow {
		start := (i / GridColumns) * GridColumns
		for j := start; j < start+GridColumns && j < n; j++ {
			out = append(out, j)
		}
		return out
	}
	for j := i % GridColumns; j < n; j += GridColumns {
		out = append(out, j)
	}
	return out
}
