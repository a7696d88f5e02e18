package grid

import "errors"

var (
	// ErrDecode is returned when the input cannot be read as an image.
	ErrDecode = errors.New("could not decode image")
	// ErrInvalidConfig is returned for out of range configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnaligned is returned when an image is not a whole number of cells.
	ErrUnaligned = errors.New("image is not aligned to the grid")
)
