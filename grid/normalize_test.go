package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedSize(t *testing.T) {
	tests := []struct {
		w, h, grid, max int
		ew, eh          int
	}{
		{1600, 800, 10, 800, 800, 400},
		{800, 1600, 10, 800, 400, 800},
		{1000, 1000, 10, 800, 800, 800},
		{640, 480, 10, 800, 640, 480},
		{645, 487, 10, 800, 640, 480},
		{1000, 333, 10, 800, 800, 260},
		{799, 801, 10, 800, 790, 800},
		{1600, 800, 10, 400, 400, 200},
		{50, 30, 64, 800, 0, 0},
		{100, 30, 40, 800, 80, 0},
		{7, 7, 1, 800, 7, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d@%d", tt.w, tt.h, tt.grid), func(t *testing.T) {
			w, h := NormalizedSize(tt.w, tt.h, tt.grid, tt.max)
			assert.Equal(t, tt.ew, w, "width")
			assert.Equal(t, tt.eh, h, "height")
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, method := range []Resampler{ResampleBiLinear, ResampleNearest, ResampleCatmullRom, ResampleBox} {
		t.Run(method.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Resample = method

			m, err := Normalize(discard, gradient(1600, 800), cfg)
			require.NoError(t, err)
			assert.Equal(t, 800, m.Width)
			assert.Equal(t, 400, m.Height)
			assert.Len(t, m.Pix, 800*400)
		})
	}

	t.Run("copy", func(t *testing.T) {
		src := gradient(40, 30)
		m, err := Normalize(discard, src, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, FromImage(src), m)
	})

	t.Run("truncate", func(t *testing.T) {
		m, err := Normalize(discard, gradient(45, 37), DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 40, m.Width)
		assert.Equal(t, 30, m.Height)
	})

	t.Run("grid larger than image", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GridSize = 64

		m, err := Normalize(discard, gradient(50, 30), cfg)
		require.NoError(t, err)
		assert.True(t, m.Empty())
		assert.Empty(t, m.Pix)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Normalize(discard, gradient(10, 10), Config{MaxColors: 1})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
