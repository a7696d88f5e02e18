package grid

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizeColor(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 0},
		{15, 0},
		{16, 32},
		{47, 32},
		{48, 64},
		{79, 64},
		{80, 96},
		{239, 224},
		{240, 255},
		{255, 255},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(int(tt.in)), func(t *testing.T) {
			k := QuantizeColor(RGB{R: tt.in, G: tt.in, B: tt.in})
			assert.Equal(t, RGB{R: tt.want, G: tt.want, B: tt.want}, k.RGB())
		})
	}

	t.Run("boundary", func(t *testing.T) {
		assert.Equal(t, QuantizeColor(RGB{R: 16}), QuantizeColor(RGB{R: 47}))
		assert.NotEqual(t, QuantizeColor(RGB{R: 47}), QuantizeColor(RGB{R: 48}))
		assert.NotEqual(t, QuantizeColor(RGB{G: 15}), QuantizeColor(RGB{G: 16}))
	})

	t.Run("channels", func(t *testing.T) {
		assert.NotEqual(t, QuantizeColor(RGB{R: 64}), QuantizeColor(RGB{G: 64}))
		assert.NotEqual(t, QuantizeColor(RGB{G: 64}), QuantizeColor(RGB{B: 64}))
	})
}

func TestBucketKeyHex(t *testing.T) {
	tests := []struct {
		in   RGB
		want string
	}{
		{RGB{0, 0, 0}, "#000000"},
		{RGB{200, 100, 5}, "#c06000"},
		{RGB{16, 47, 48}, "#202040"},
		{RGB{224, 230, 255}, "#e0e0ff"},
		{RGB{255, 255, 255}, "#ffffff"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuantizeColor(tt.in).Hex(), "%v", tt.in)
	}
}
