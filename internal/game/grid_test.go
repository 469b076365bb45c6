package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensions(t *testing.T) {
	rows, cols := Dimensions(12)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)

	rows, _ = Dimensions(13)
	assert.Equal(t, 5, rows, "partial last row still counts")

	rows, _ = Dimensions(0)
	assert.Equal(t, 0, rows)
}

func TestAdjacentIndices_Corners(t *testing.T) {
	// 0 1 2
	// 3 4 5
	// 6 7 8
	assert.ElementsMatch(t, []int{3, 1}, AdjacentIndices(0, 9))
	assert.ElementsMatch(t, []int{1, 3, 5, 7}, AdjacentIndices(4, 9))
	assert.ElementsMatch(t, []int{5, 7}, AdjacentIndices(8, 9))
}

func TestAdjacentIndices_NoRowWrap(t *testing.T) {
	// index 2 is the end of row 0; index 3 starts row 1.
	assert.NotContains(t, AdjacentIndices(2, 9), 3)
	assert.NotContains(t, AdjacentIndices(3, 9), 2)
}

func TestAdjacentIndices_PartialLastRow(t *testing.T) {
	// 0 1 2
	// 3 4 5
	// 6 7
	assert.ElementsMatch(t, []int{4, 6}, AdjacentIndices(7, 8))
	assert.ElementsMatch(t, []int{2, 4}, AdjacentIndices(5, 8), "no down neighbor below a partial row gap")
}

func TestAdjacentIndices_OutOfRange(t *testing.T) {
	assert.Empty(t, AdjacentIndices(-1, 9))
	assert.Empty(t, AdjacentIndices(9, 9))
}

func TestAdjacentIndices_SymmetricAndIrreflexive(t *testing.T) {
	for n := 1; n <= 21; n++ {
		for i := 0; i < n; i++ {
			adj := AdjacentIndices(i, n)
			assert.NotContains(t, adj, i)
			seen := map[int]bool{}
			for _, j := range adj {
				assert.False(t, seen[j], "duplicate neighbor %d of %d (n=%d)", j, i, n)
				seen[j] = true
				assert.True(t, slices.Contains(AdjacentIndices(j, n), i),
					"adjacency not symmetric: %d->%d (n=%d)", i, j, n)
			}
		}
	}
}

func TestLineIndices(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, LineIndices(4, 12, true))
	assert.Equal(t, []int{1, 4, 7, 10}, LineIndices(4, 12, false))
	assert.Equal(t, []int{12, 13}, LineIndices(13, 14, true), "partial row")
	assert.Equal(t, []int{2, 5}, LineIndices(5, 7, false), "column stops at board length")
	assert.Nil(t, LineIndices(20, 12, true))
}

func TestLineIndices_SharedRowOrColumn(t *testing.T) {
	for n := 1; n <= 18; n++ {
		for i := 0; i < n; i++ {
			row := LineIndices(i, n, true)
			assert.True(t, len(row) >= 1 && len(row) <= 3)
			for _, idx := range row {
				assert.Equal(t, i/3, idx/3)
			}
			rows, _ := Dimensions(n)
			col := LineIndices(i, n, false)
			assert.LessOrEqual(t, len(col), rows)
			for _, idx := range col {
				assert.Equal(t, i%3, idx%3)
				assert.Less(t, idx, n)
			}
		}
	}
}
