package grid

import (
	"fmt"
	"image/color"
	"log/slog"

	"pixelart/palette"
)

func (r *Result) limit(logger *slog.Logger, norm *RawImage, lookup *Lookup, cfg Config) error {
	swatches := make([]palette.Swatch, lookup.Len())
	for i := range swatches {
		c := lookup.Key(i).RGB()
		swatches[i] = palette.Swatch{
			Color:  color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff},
			Weight: lookup.Count(i),
		}
	}

	var mapping []int
	switch cfg.Limit {
	case LimitMerge:
		mapping = palette.Merge(swatches, cfg.MaxColors)
	case LimitKMeans:
		var err error
		if mapping, err = palette.KMeans(swatches, cfg.MaxColors); err != nil {
			return err
		}
	case LimitDominant:
		mapping = palette.Dominant(norm.Image(), swatches, cfg.MaxColors)
	default:
		return fmt.Errorf("%w: unsupported %s", ErrInvalidConfig, cfg.Limit)
	}

	before := len(r.Palette)
	r.remap(mapping)
	logger.Debug("limited palette", "method", cfg.Limit, "from", before, "to", len(r.Palette))
	return nil
}

// remap folds every palette entry into mapping[i] and renumbers the
// survivors. A group takes the position of its earliest member, so the
// palette stays in first occurrence order.
func (r *Result) remap(mapping []int) {
	next := make(map[int]int, len(r.Palette))
	pal := make(Palette, 0, len(r.Palette))
	for i := range r.Palette {
		rep := mapping[i]
		if _, ok := next[rep]; ok {
			continue
		}
		next[rep] = len(pal)
		pal = append(pal, Color{
			Hex:    r.Palette[rep].Hex,
			Number: len(pal) + 1,
		})
	}

	for _, row := range r.Grid {
		for c, v := range row {
			row[c] = next[mapping[v]]
		}
	}
	r.Palette = pal
}
