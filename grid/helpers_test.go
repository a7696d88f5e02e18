package grid

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

// gradient is a deterministic image with many distinct buckets.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / max(1, w-1)),
				G: uint8(y * 255 / max(1, h-1)),
				B: uint8((x + y) % 256),
				A: 0xff,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func checkResult(t *testing.T, res *Result) {
	t.Helper()

	require.Len(t, res.Grid, res.Height/res.GridSize)
	for _, row := range res.Grid {
		require.Len(t, row, res.Width/res.GridSize)
		for _, v := range row {
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, len(res.Palette))
		}
	}

	seen := map[string]bool{}
	for i, c := range res.Palette {
		require.Equal(t, i+1, c.Number)
		require.False(t, seen[c.Hex], "duplicate color %s", c.Hex)
		seen[c.Hex] = true
	}
}
