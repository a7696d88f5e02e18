package render

import (
	"bufio"
	"fmt"
	"io"

	"pixelart/grid"
)

// WriteSVG writes the chart as an SVG document with the same layout as
// Chart.
func WriteSVG(w io.Writer, res *grid.Result, opts ChartOptions) error {
	if res.Empty() {
		return ErrNoData
	}

	pal, err := swatches(res.Palette)
	if err != nil {
		return err
	}

	rows, cols := res.Grid.Rows(), res.Grid.Cols()
	cell := opts.cellSize(cols)
	if err = checkSize(cols, rows, cell); err != nil {
		return err
	}
	width, height := cols*cell, rows*cell

	stroke := ""
	if opts.GridColor != nil {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="1"`, hexColor(opts.GridColor))
		if _, _, _, a := opts.GridColor.RGBA(); a < 0xffff {
			stroke += fmt.Sprintf(` stroke-opacity="%.3f"`, float64(a)/0xffff)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		width, height, width, height)

	for r, row := range res.Grid {
		for c, idx := range row {
			if idx < 0 || idx >= len(pal) {
				return fmt.Errorf("cell (%d, %d) refers to missing color %d", r, c, idx)
			}
			fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"%s/>`+"\n",
				c*cell, r*cell, cell, cell, res.Palette[idx].Hex, stroke)
		}
	}

	if opts.ShowNumbers && cell >= minLabelCell {
		fmt.Fprintf(bw, `<g font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central">`+"\n",
			float64(cell)*0.4)
		for r, row := range res.Grid {
			for c, idx := range row {
				fmt.Fprintf(bw, `<text x="%.1f" y="%.1f" fill="%s">%d</text>`+"\n",
					(float64(c)+0.5)*float64(cell), (float64(r)+0.5)*float64(cell),
					hexColor(textColor(pal[idx])), idx+1)
			}
		}
		fmt.Fprint(bw, "</g>\n")
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}
