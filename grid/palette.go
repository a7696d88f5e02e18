package grid

import (
	"fmt"
	"image/color"
)

// Color is one palette entry. Number is the 1-based label printed in the
// chart.
type Color struct {
	Hex    string `json:"hex"`
	Number int    `json:"number"`
}

// RGBA parses Hex back into an opaque color.
func (c Color) RGBA() (color.RGBA, error) {
	res := color.RGBA{A: 0xff}
	n, err := fmt.Sscanf(c.Hex, "#%02x%02x%02x", &res.R, &res.G, &res.B)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("could not read color %q: %w", c.Hex, err)
	} else if n != 3 {
		return color.RGBA{}, fmt.Errorf("insufficient color fields in %q: %d", c.Hex, n)
	}
	return res, nil
}

// Palette is ordered by first occurrence in the normalized image.
type Palette []Color

// Colors converts the palette to a color.Palette of the same order.
func (p Palette) Colors() (color.Palette, error) {
	pal := make(color.Palette, len(p))
	for i, c := range p {
		rgba, err := c.RGBA()
		if err != nil {
			return nil, err
		}
		pal[i] = rgba
	}
	return pal, nil
}

// Lookup maps buckets to palette indices for a single conversion. It also
// counts how many pixels fell into each bucket.
type Lookup struct {
	index  map[BucketKey]int
	keys   []BucketKey
	counts []int
}

func newLookup() *Lookup {
	return &Lookup{index: make(map[BucketKey]int)}
}

func (l *Lookup) add(k BucketKey) int {
	i, ok := l.index[k]
	if !ok {
		i = len(l.keys)
		l.index[k] = i
		l.keys = append(l.keys, k)
		l.counts = append(l.counts, 0)
	}
	l.counts[i]++
	return i
}

func (l *Lookup) Index(k BucketKey) (int, bool) {
	i, ok := l.index[k]
	return i, ok
}

func (l *Lookup) Len() int {
	return len(l.keys)
}

func (l *Lookup) Key(i int) BucketKey {
	return l.keys[i]
}

// Count is the number of pixels in bucket i.
func (l *Lookup) Count(i int) int {
	return l.counts[i]
}

// BuildPalette scans img row by row and assigns every new bucket the next
// index.
func BuildPalette(img *RawImage) (Palette, *Lookup) {
	lookup := newLookup()
	for _, p := range img.Pix {
		lookup.add(QuantizeColor(p))
	}

	pal := make(Palette, len(lookup.keys))
	for i, k := range lookup.keys {
		pal[i] = Color{
			Hex:    k.Hex(),
			Number: i + 1,
		}
	}
	return pal, lookup
}
