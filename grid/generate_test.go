package grid

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("downscale", func(t *testing.T) {
		res, err := Generate(discard, encodePNG(t, gradient(1600, 800)), DefaultConfig())
		require.NoError(t, err)

		assert.Equal(t, 800, res.Width)
		assert.Equal(t, 400, res.Height)
		assert.Equal(t, 10, res.GridSize)
		assert.Equal(t, 40, res.Grid.Rows())
		assert.Equal(t, 80, res.Grid.Cols())
		assert.False(t, res.Empty())
		checkResult(t, res)
	})

	t.Run("deterministic", func(t *testing.T) {
		data := encodePNG(t, gradient(320, 240))
		a, err := Generate(discard, data, DefaultConfig())
		require.NoError(t, err)
		b, err := Generate(discard, data, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("first occurrence", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Set(0, 0, color.Black)
		img.Set(1, 0, color.RGBA{R: 0xff, A: 0xff})
		img.Set(0, 1, color.RGBA{G: 0xff, A: 0xff})
		img.Set(1, 1, color.RGBA{B: 0xff, A: 0xff})

		res, err := Generate(discard, encodePNG(t, img), Config{GridSize: 1, MaxColors: 4})
		require.NoError(t, err)
		assert.Equal(t, Palette{
			{Hex: "#000000", Number: 1},
			{Hex: "#ff0000", Number: 2},
			{Hex: "#00ff00", Number: 3},
			{Hex: "#0000ff", Number: 4},
		}, res.Palette)
		assert.Equal(t, Grid{{0, 1}, {2, 3}}, res.Grid)
	})

	t.Run("grid larger than image", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GridSize = 50

		res, err := Generate(discard, encodePNG(t, gradient(30, 20)), cfg)
		require.NoError(t, err)
		assert.True(t, res.Empty())
		assert.Empty(t, res.Palette)
		assert.Equal(t, 0, res.Grid.Rows())
	})

	t.Run("undecodable", func(t *testing.T) {
		_, err := Generate(discard, []byte("definitely not an image"), DefaultConfig())
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("truncated", func(t *testing.T) {
		data := encodePNG(t, gradient(64, 64))
		_, err := Generate(discard, data[:len(data)/2], DefaultConfig())
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("invalid config", func(t *testing.T) {
		data := encodePNG(t, gradient(20, 20))
		for _, cfg := range []Config{
			{GridSize: 0, MaxColors: 12},
			{GridSize: 10, MaxColors: 0},
			{GridSize: 10, MaxColors: 12, MaxDimension: -1},
			{GridSize: 10, MaxColors: 12, Limit: Limit(42)},
		} {
			_, err := Generate(discard, data, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", cfg)
		}
	})
}

func TestGenerateLimit(t *testing.T) {
	src := gradient(200, 150)

	full, err := GenerateImage(discard, src, DefaultConfig())
	require.NoError(t, err)
	require.Greater(t, len(full.Palette), 4)

	for _, limit := range []Limit{LimitMerge, LimitKMeans, LimitDominant} {
		t.Run(limit.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MaxColors = 4
			cfg.Limit = limit

			res, err := GenerateImage(discard, src, cfg)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Palette), 4)
			assert.NotEmpty(t, res.Palette)
			assert.Equal(t, full.Grid.Rows(), res.Grid.Rows())
			assert.Equal(t, full.Grid.Cols(), res.Grid.Cols())
			checkResult(t, res)

			known := map[string]bool{}
			for _, c := range full.Palette {
				known[c.Hex] = true
			}
			for _, c := range res.Palette {
				assert.True(t, known[c.Hex], "%s is not a bucket color", c.Hex)
			}
		})
	}

	t.Run("merge is deterministic", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxColors = 5
		cfg.Limit = LimitMerge

		a, err := GenerateImage(discard, src, cfg)
		require.NoError(t, err)
		b, err := GenerateImage(discard, src, cfg)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("under the cap", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxColors = 10000
		cfg.Limit = LimitMerge

		res, err := GenerateImage(discard, src, cfg)
		require.NoError(t, err)
		assert.Equal(t, full, res)
	})
}

func TestResultRemap(t *testing.T) {
	newResult := func() *Result {
		return &Result{
			Palette: Palette{
				{Hex: "#000000", Number: 1},
				{Hex: "#200000", Number: 2},
				{Hex: "#0000ff", Number: 3},
				{Hex: "#0000e0", Number: 4},
			},
			Grid: Grid{{0, 1}, {2, 3}},
		}
	}

	t.Run("pairs", func(t *testing.T) {
		res := newResult()
		res.remap([]int{0, 0, 3, 3})
		assert.Equal(t, Palette{
			{Hex: "#000000", Number: 1},
			{Hex: "#0000e0", Number: 2},
		}, res.Palette)
		assert.Equal(t, Grid{{0, 0}, {1, 1}}, res.Grid)
	})

	t.Run("order by earliest member", func(t *testing.T) {
		res := newResult()
		res.remap([]int{2, 1, 2, 1})
		assert.Equal(t, Palette{
			{Hex: "#0000ff", Number: 1},
			{Hex: "#200000", Number: 2},
		}, res.Palette)
		assert.Equal(t, Grid{{0, 1}, {0, 1}}, res.Grid)
	})
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(bytes.NewReader(encodePNG(t, gradient(12, 8))))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())
}

func TestConfig(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	l, err := ParseLimit("KMeans")
	require.NoError(t, err)
	assert.Equal(t, LimitKMeans, l)

	l, err = ParseLimit("")
	require.NoError(t, err)
	assert.Equal(t, LimitNone, l)

	_, err = ParseLimit("median-cut")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	r, err := ParseResampler(" box ")
	require.NoError(t, err)
	assert.Equal(t, ResampleBox, r)

	_, err = ParseResampler("lanczos")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
