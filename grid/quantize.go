package grid

import "fmt"

// Step is the width of a color bucket on each channel.
const Step = 32

// BucketKey identifies a color bucket. It holds the per-channel level, not
// the channel value.
type BucketKey struct {
	r, g, b uint8
}

// QuantizeColor snaps every channel to the nearest multiple of Step, halves
// rounding up.
func QuantizeColor(p RGB) BucketKey {
	return BucketKey{
		r: level(p.R),
		g: level(p.G),
		b: level(p.B),
	}
}

func level(c uint8) uint8 {
	return uint8((int(c) + Step/2) / Step)
}

// channel is the value of a level. The top level sits at 256 and is
// clamped to 255.
func channel(l uint8) uint8 {
	return uint8(min(int(l)*Step, 0xff))
}

// RGB returns the canonical color of the bucket.
func (k BucketKey) RGB() RGB {
	return RGB{
		R: channel(k.r),
		G: channel(k.g),
		B: channel(k.b),
	}
}

// Hex formats the canonical color as #rrggbb.
func (k BucketKey) Hex() string {
	c := k.RGB()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
