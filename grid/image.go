package grid

import (
	"image"
	"image/color"
)

type RGB struct {
	R, G, B uint8
}

// RawImage is a dense, alpha-less pixel buffer.
type RawImage struct {
	Width  int
	Height int
	// Pix holds the pixels in row-major order. The pixel at (x, y) is
	// Pix[y*Width+x].
	Pix []RGB
}

func NewRawImage(width, height int) *RawImage {
	return &RawImage{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// FromImage copies img into a RawImage, dropping alpha.
func FromImage(img image.Image) *RawImage {
	b := img.Bounds()
	m := NewRawImage(b.Dx(), b.Dy())

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			m.Pix[i] = RGB{R: c.R, G: c.G, B: c.B}
			i++
		}
	}
	return m
}

func (m *RawImage) At(x, y int) RGB {
	return m.Pix[y*m.Width+x]
}

func (m *RawImage) Empty() bool {
	return m.Width == 0 || m.Height == 0
}

// Image returns an opaque RGBA copy of m.
func (m *RawImage) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, p := range m.Pix {
		img.Pix[i*4] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = 0xff
	}
	return img
}
