package grid

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxPixels is the largest source image Decode accepts.
const MaxPixels = 50_000_000

// Decode reads an image after checking its header size.
func Decode(r io.Reader) (image.Image, string, error) {
	var b bytes.Buffer
	c, format, err := image.DecodeConfig(io.TeeReader(r, &b))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if c.Width*c.Height > MaxPixels {
		return nil, format, fmt.Errorf("%w: image is too big (%dx%d)", ErrDecode, c.Width, c.Height)
	}

	img, format, err := image.Decode(io.MultiReader(&b, r))
	if err != nil {
		return nil, format, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, format, nil
}
