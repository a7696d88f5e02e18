package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixelart/grid"
)

const (
	DefaultSwatchSize = 24
	legendPerRow      = 6
)

// Legend lays the palette out as numbered swatches, legendPerRow per row.
func Legend(res *grid.Result, swatch int) (*image.RGBA, error) {
	if len(res.Palette) == 0 {
		return nil, ErrNoData
	}
	if swatch <= 0 {
		swatch = DefaultSwatchSize
	}

	pal, err := swatches(res.Palette)
	if err != nil {
		return nil, err
	}

	pad := max(2, swatch/4)
	entryW := swatch*4 + pad
	entryH := swatch + pad
	cols := min(legendPerRow, len(pal))
	rows := (len(pal) + legendPerRow - 1) / legendPerRow

	img := image.NewRGBA(image.Rect(0, 0, cols*entryW+pad, rows*entryH+pad))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	lbl, err := newLabeler(img, float64(swatch)*0.6)
	if err != nil {
		return nil, err
	}

	for i, c := range pal {
		x := pad + (i%legendPerRow)*entryW
		y := pad + (i/legendPerRow)*entryH

		sw := image.Rect(x, y, x+swatch, y+swatch)
		draw.Draw(img, sw, image.NewUniform(color.Gray{Y: 0xcc}), image.Point{}, draw.Src)
		draw.Draw(img, sw.Inset(1), image.NewUniform(c), image.Point{}, draw.Src)

		text := image.Rect(sw.Max.X+pad, y, x+entryW-pad, y+swatch)
		if err = lbl.draw(text, fmt.Sprintf("#%d", res.Palette[i].Number), color.Black, false); err != nil {
			return nil, fmt.Errorf("could not label color %d: %w", i+1, err)
		}
	}

	return img, nil
}
