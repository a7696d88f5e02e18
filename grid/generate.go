package grid

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
)

// Result is the output of a conversion.
type Result struct {
	Palette Palette `json:"colors"`
	Grid    Grid    `json:"grid"`
	// Width and Height are the normalized image size in pixels.
	Width    int `json:"width"`
	Height   int `json:"height"`
	GridSize int `json:"gridSize"`
}

// Empty reports a result without any cell. Renderers refuse it.
func (r *Result) Empty() bool {
	return r.Grid.Rows() == 0 || r.Grid.Cols() == 0
}

// Generate decodes data and converts it into a palette and a grid.
func Generate(logger *slog.Logger, data []byte, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	logger.Debug("decoded image", "format", format, "width", b.Dx(), "height", b.Dy())

	return GenerateImage(logger, img, cfg)
}

// GenerateImage converts an already decoded image.
func GenerateImage(logger *slog.Logger, img image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	norm, err := Normalize(logger, img, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not normalize image: %w", err)
	}

	pal, lookup := BuildPalette(norm)
	g, err := BuildGrid(norm, cfg.GridSize, lookup)
	if err != nil {
		return nil, fmt.Errorf("could not sample grid: %w", err)
	}

	res := &Result{
		Palette:  pal,
		Grid:     g,
		Width:    norm.Width,
		Height:   norm.Height,
		GridSize: cfg.GridSize,
	}

	if cfg.Limit != LimitNone && len(pal) > cfg.MaxColors {
		if err = res.limit(logger, norm, lookup, cfg); err != nil {
			return nil, fmt.Errorf("could not limit palette to %d colors: %w", cfg.MaxColors, err)
		}
	} else if len(pal) > cfg.MaxColors {
		logger.Debug("palette exceeds max colors", "colors", len(pal), "max", cfg.MaxColors)
	}

	logger.Info("generated", "rows", g.Rows(), "cols", g.Cols(), "colors", len(res.Palette))
	return res, nil
}
