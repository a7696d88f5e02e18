package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"

	"pixelart/grid"
)

var (
	// ErrNoData is returned when a result has nothing to draw.
	ErrNoData = errors.New("no data to render")
	// ErrTooLarge is returned when the output would exceed MaxPixels.
	ErrTooLarge = errors.New("output image too large")
)

const (
	// DefaultWidth is the chart width used when no cell size is given.
	DefaultWidth = 800
	// MaxCellSize bounds the rendered edge of a cell.
	MaxCellSize = DefaultWidth
	// MaxPixels bounds the area of the images Chart and Preview allocate.
	MaxPixels = 64 << 20
)

// minLabelCell is the smallest cell that still gets a readable number.
const minLabelCell = 8

var DefaultGridColor = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

type ChartOptions struct {
	// CellSize is the rendered edge of a cell. Zero fits the chart within
	// DefaultWidth.
	CellSize    int
	ShowNumbers bool
	// GridColor outlines every cell with a one pixel border. Nil disables
	// the border.
	GridColor color.Color
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		ShowNumbers: true,
		GridColor:   DefaultGridColor,
	}
}

func (o ChartOptions) cellSize(cols int) int {
	if o.CellSize > 0 {
		return o.CellSize
	}
	return max(1, DefaultWidth/cols)
}

// checkSize rejects cell sizes outside 1..MaxCellSize and outputs larger
// than MaxPixels.
func checkSize(cols, rows, cell int) error {
	if cell < 1 || cell > MaxCellSize {
		return fmt.Errorf("%w: cell size %d out of 1..%d", ErrTooLarge, cell, MaxCellSize)
	}
	w, h := cols*cell, rows*cell
	if w > MaxPixels/h {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, w, h, MaxPixels)
	}
	return nil
}

func swatches(p grid.Palette) ([]color.RGBA, error) {
	res := make([]color.RGBA, len(p))
	for i, c := range p {
		rgba, err := c.RGBA()
		if err != nil {
			return nil, err
		}
		res[i] = rgba
	}
	return res, nil
}

// Chart draws every cell with its palette color and, optionally, its
// color number.
func Chart(res *grid.Result, opts ChartOptions) (*image.RGBA, error) {
	if res.Empty() {
		return nil, ErrNoData
	}

	pal, err := swatches(res.Palette)
	if err != nil {
		return nil, err
	}

	rows, cols := res.Grid.Rows(), res.Grid.Cols()
	cell := opts.cellSize(cols)
	if err = checkSize(cols, rows, cell); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))

	var lbl *labeler
	if opts.ShowNumbers && cell >= minLabelCell {
		if lbl, err = newLabeler(img, float64(cell)*0.4); err != nil {
			return nil, err
		}
	}

	border := opts.GridColor != nil && cell > 2
	for r, row := range res.Grid {
		for c, idx := range row {
			if idx < 0 || idx >= len(pal) {
				return nil, fmt.Errorf("cell (%d, %d) refers to missing color %d", r, c, idx)
			}

			rect := image.Rect(c*cell, r*cell, (c+1)*cell, (r+1)*cell)
			fill := rect
			if border {
				draw.Draw(img, rect, image.NewUniform(opts.GridColor), image.Point{}, draw.Src)
				fill = rect.Inset(1)
			}
			draw.Draw(img, fill, image.NewUniform(pal[idx]), image.Point{}, draw.Src)

			if lbl != nil {
				if err = lbl.draw(rect, strconv.Itoa(idx+1), textColor(pal[idx]), true); err != nil {
					return nil, fmt.Errorf("could not label cell (%d, %d): %w", r, c, err)
				}
			}
		}
	}

	return img, nil
}
