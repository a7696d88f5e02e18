package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixelart/grid"
)

// Preview draws every cell as a scale x scale block of its palette color.
// Palettes that fit in 256 entries give an *image.Paletted whose indices
// are the grid values.
func Preview(res *grid.Result, scale int) (draw.Image, error) {
	if res.Empty() {
		return nil, ErrNoData
	}
	scale = max(1, scale)
	if err := checkSize(res.Grid.Cols(), res.Grid.Rows(), scale); err != nil {
		return nil, err
	}

	pal, err := res.Palette.Colors()
	if err != nil {
		return nil, err
	}

	r := image.Rect(0, 0, res.Grid.Cols()*scale, res.Grid.Rows()*scale)
	var dst draw.Image
	if len(pal) <= 256 {
		dst = image.NewPaletted(r, pal)
	} else {
		dst = image.NewRGBA(r)
	}

	for y, row := range res.Grid {
		for x, idx := range row {
			cell := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			fill(dst, cell, pal, idx)
		}
	}
	return dst, nil
}

func fill(dst draw.Image, r image.Rectangle, pal color.Palette, idx int) {
	if p, ok := dst.(*image.Paletted); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				p.SetColorIndex(x, y, uint8(idx))
			}
		}
		return
	}
	draw.Draw(dst, r, image.NewUniform(pal[idx]), image.Point{}, draw.Src)
}
