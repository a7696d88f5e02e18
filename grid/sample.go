package grid

import "fmt"

// Grid holds one palette index per cell, indexed [row][col].
type Grid [][]int

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// BuildGrid samples the top-left pixel of every gridSize block of img.
func BuildGrid(img *RawImage, gridSize int, lookup *Lookup) (Grid, error) {
	if gridSize < 1 {
		return nil, fmt.Errorf("%w: grid size must be at least 1, got %d", ErrInvalidConfig, gridSize)
	}
	if img.Width%gridSize != 0 || img.Height%gridSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d with cells of %d", ErrUnaligned, img.Width, img.Height, gridSize)
	}

	rows := img.Height / gridSize
	cols := img.Width / gridSize
	g := make(Grid, rows)
	for r := range rows {
		row := make([]int, cols)
		for c := range cols {
			key := QuantizeColor(img.At(c*gridSize, r*gridSize))
			i, ok := lookup.Index(key)
			if !ok {
				return nil, fmt.Errorf("bucket %s of cell (%d, %d) is not in the palette", key.Hex(), r, c)
			}
			row[c] = i
		}
		g[r] = row
	}
	return g, nil
}
