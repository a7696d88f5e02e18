package grid

import (
	"fmt"
	"strings"
)

const (
	DefaultGridSize     = 10
	DefaultMaxColors    = 12
	DefaultMaxDimension = 800
)

// Limit selects how MaxColors is applied to the palette.
type Limit int

const (
	// LimitNone keeps every bucket found; MaxColors is advisory.
	LimitNone Limit = iota
	// LimitMerge keeps the most used buckets and folds the others into
	// their nearest kept neighbour.
	LimitMerge
	// LimitKMeans clusters the bucket colors with k-means.
	LimitKMeans
	// LimitDominant picks representatives from the dominant image colors.
	LimitDominant
)

var limitNames = map[Limit]string{
	LimitNone:     "none",
	LimitMerge:    "merge",
	LimitKMeans:   "kmeans",
	LimitDominant: "dominant",
}

func (l Limit) String() string {
	if s, ok := limitNames[l]; ok {
		return s
	}
	return fmt.Sprintf("limit(%d)", int(l))
}

func ParseLimit(s string) (Limit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LimitNone, nil
	}
	for l, name := range limitNames {
		if name == s {
			return l, nil
		}
	}
	return LimitNone, fmt.Errorf("%w: unknown palette limit %q", ErrInvalidConfig, s)
}

// Resampler selects the scaler used by the normalizer.
type Resampler int

const (
	ResampleBiLinear Resampler = iota
	ResampleNearest
	ResampleCatmullRom
	ResampleBox
)

var resamplerNames = map[Resampler]string{
	ResampleBiLinear:   "bilinear",
	ResampleNearest:    "nearest",
	ResampleCatmullRom: "catmullrom",
	ResampleBox:        "box",
}

func (r Resampler) String() string {
	if s, ok := resamplerNames[r]; ok {
		return s
	}
	return fmt.Sprintf("resampler(%d)", int(r))
}

func ParseResampler(s string) (Resampler, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ResampleBiLinear, nil
	}
	for r, name := range resamplerNames {
		if name == s {
			return r, nil
		}
	}
	return ResampleBiLinear, fmt.Errorf("%w: unknown resampler %q", ErrInvalidConfig, s)
}

// Config drives a single conversion.
type Config struct {
	// GridSize is the edge, in normalized pixels, of one cell.
	GridSize int
	// MaxColors caps the palette only when Limit is not LimitNone.
	MaxColors int
	Limit     Limit
	Resample  Resampler
	// MaxDimension bounds the larger normalized dimension. Zero means
	// DefaultMaxDimension.
	MaxDimension int
}

func DefaultConfig() Config {
	return Config{
		GridSize:     DefaultGridSize,
		MaxColors:    DefaultMaxColors,
		MaxDimension: DefaultMaxDimension,
	}
}

func (c Config) Validate() error {
	switch {
	case c.GridSize < 1:
		return fmt.Errorf("%w: grid size must be at least 1, got %d", ErrInvalidConfig, c.GridSize)
	case c.MaxColors < 1:
		return fmt.Errorf("%w: max colors must be at least 1, got %d", ErrInvalidConfig, c.MaxColors)
	case c.MaxDimension < 0:
		return fmt.Errorf("%w: negative max dimension %d", ErrInvalidConfig, c.MaxDimension)
	}
	if _, ok := limitNames[c.Limit]; !ok {
		return fmt.Errorf("%w: unsupported %s", ErrInvalidConfig, c.Limit)
	}
	if _, ok := resamplerNames[c.Resample]; !ok {
		return fmt.Errorf("%w: unsupported %s", ErrInvalidConfig, c.Resample)
	}
	return nil
}

func (c Config) maxDimension() int {
	if c.MaxDimension == 0 {
		return DefaultMaxDimension
	}
	return c.MaxDimension
}
