package grid

import (
	"image"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// NormalizedSize fits width x height within maxDim, keeping the aspect
// ratio, then floors both sides to a multiple of gridSize.
func NormalizedSize(width, height, gridSize, maxDim int) (int, int) {
	w, h := float64(width), float64(height)
	bound := float64(maxDim)

	if w > h && w > bound {
		h = h * bound / w
		w = bound
	} else if h > bound {
		w = w * bound / h
		h = bound
	}

	return truncate(w, gridSize), truncate(h, gridSize)
}

func truncate(v float64, gridSize int) int {
	cells := int(math.Floor(v / float64(gridSize)))
	return cells * gridSize
}

// Normalize resamples img to its normalized size. A grid larger than the
// image gives an empty RawImage, not an error.
func Normalize(logger *slog.Logger, img image.Image, cfg Config) (*RawImage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := NormalizedSize(b.Dx(), b.Dy(), cfg.GridSize, cfg.maxDimension())
	if w == 0 || h == 0 {
		logger.Warn("grid larger than image", "width", b.Dx(), "height", b.Dy(), "grid", cfg.GridSize)
		return &RawImage{Width: w, Height: h}, nil
	}

	if w == b.Dx() && h == b.Dy() {
		return FromImage(img), nil
	}

	logger.Debug("resizing", "width", w, "height", h, "resample", cfg.Resample)
	return FromImage(resample(img, w, h, cfg.Resample)), nil
}

func resample(img image.Image, width, height int, method Resampler) image.Image {
	if method == ResampleBox {
		return transform.Resize(img, width, height, transform.Box)
	}

	var scaler draw.Scaler
	switch method {
	case ResampleNearest:
		scaler = draw.NearestNeighbor
	case ResampleCatmullRom:
		scaler = draw.CatmullRom
	default:
		scaler = draw.BiLinear
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
