package inspect

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixelart/config"
	"pixelart/grid"
)

// CLICmd reports the grid every image would produce, reading only image
// headers.
type CLICmd struct {
	config.Source
	config.Grid

	conf grid.Config `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Source.Validate(); err != nil {
		return err
	}

	var err error
	c.conf, err = c.Grid.Config()
	return err
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	files, err := c.Source.Files()
	if err != nil {
		return err
	}

	maxDim := c.conf.MaxDimension
	if maxDim == 0 {
		maxDim = grid.DefaultMaxDimension
	}

	var okCount, emptyCount, errCount int
	for _, name := range files {
		imgConf, format, err := decodeConfig(name)
		if err != nil {
			errCount++
			logger.Error("could not read image", "file", name, "error", err)
			continue
		}

		w, h := grid.NormalizedSize(imgConf.Width, imgConf.Height, c.conf.GridSize, maxDim)
		rows, cols := h/c.conf.GridSize, w/c.conf.GridSize
		if rows == 0 || cols == 0 {
			emptyCount++
			logger.Warn("grid larger than image", "file", name, "width", imgConf.Width, "height", imgConf.Height,
				"grid", c.conf.GridSize)
			continue
		}

		okCount++
		logger.Info("image", "file", name, "format", format,
			"width", imgConf.Width, "height", imgConf.Height,
			"normalized", fmt.Sprintf("%dx%d", w, h), "rows", rows, "cols", cols)
	}

	logger.Info("stats", "images", okCount, "empty", emptyCount, "errors", errCount,
		"total", okCount+emptyCount+errCount)

	if errCount > 0 {
		return fmt.Errorf("error reading %d files", errCount)
	}
	return nil
}

func decodeConfig(name string) (image.Config, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	return image.DecodeConfig(f)
}
