package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"pixelart/config"
	"pixelart/grid"
	"pixelart/palette"
	"pixelart/parallel"
	"pixelart/render"
)

type CLICmd struct {
	config.Source
	config.Grid

	Dest      string `help:"Destination folder for the charts. Relative to the scan folder if not absolute." default:"pixelart"`
	Workers   int    `help:"Number of parallel conversions, 0 uses every CPU" default:"0"`
	Format    string `help:"Chart format (${enum})" enum:"png,gif,jpeg,bmp,tiff,svg,pdf" default:"png"`
	CellSize  int    `help:"Rendered cell edge in pixels, 0 fits the chart in 800 pixels" default:"0"`
	Numbers   bool   `help:"Print color numbers in cells" default:"true" negatable:""`
	GridColor string `help:"Cell border color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA), empty for none" default:"#eee"`
	Legend    bool   `help:"Write a legend image next to the chart" default:"true" negatable:""`
	Pal       bool   `help:"Write the palette as a RIFF .pal file" default:"false"`
	JSON      bool   `name:"json" help:"Write the palette and grid as JSON" default:"false"`
	Preview   int    `help:"Write a PNG preview drawing each cell as an NxN block, 0 disables" default:"0"`

	BorderColor color.Color `kong:"-"`
	conf        grid.Config `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Source.Validate(); err != nil {
		return err
	}

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(c.Source.Dir(), c.Dest)
	}

	var err error
	if c.conf, err = c.Grid.Config(); err != nil {
		return err
	}

	if c.CellSize < 0 || c.CellSize > render.MaxCellSize {
		return fmt.Errorf("invalid cell size %d, should be 0..%d", c.CellSize, render.MaxCellSize)
	}
	if c.Preview < 0 || c.Preview > render.MaxCellSize {
		return fmt.Errorf("invalid preview scale %d, should be 0..%d", c.Preview, render.MaxCellSize)
	}

	if c.BorderColor, err = render.ParseColor(c.GridColor); err != nil {
		return err
	}

	return nil
}

func (c *CLICmd) chartOptions() render.ChartOptions {
	return render.ChartOptions{
		CellSize:    c.CellSize,
		ShowNumbers: c.Numbers,
		GridColor:   c.BorderColor,
	}
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := c.Source.Files()
	if err != nil {
		return err
	}

	pool := parallel.Start(c.Workers)
	for _, file := range files {
		pool.Do(func() error {
			log := logger.With("file", file)
			if err := c.convert(log, file); err != nil {
				log.Error("could not convert image", "error", err)
				return err
			}
			return nil
		})
	}

	processed, failed := pool.Wait()
	logger.Info("stats", "processed", processed, "errors", failed, "total", processed+failed)

	if failed > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

func (c *CLICmd) convert(logger *slog.Logger, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read image: %w", err)
	}

	res, err := grid.Generate(logger, data, c.conf)
	if err != nil {
		return err
	}

	if res.Empty() {
		logger.Warn("no data, nothing written", "width", res.Width, "height", res.Height, "grid", res.GridSize)
		return nil
	}

	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	opts := c.chartOptions()
	chartName := fmt.Sprintf("%s.chart.%s", base, c.Format)
	if c.Format == "svg" {
		err = save(c.Dest, chartName, func(w io.Writer) error {
			return render.WriteSVG(w, res, opts)
		})
	} else {
		err = saveChart(c.Dest, chartName, res, opts, c.Format)
	}
	if err != nil {
		return err
	}
	written := []string{chartName}

	if c.Legend {
		name := base + ".legend.png"
		if err = saveLegend(c.Dest, name, res); err != nil {
			return err
		}
		written = append(written, name)
	}

	if c.Preview > 0 {
		name := base + ".preview.png"
		if err = savePreview(c.Dest, name, res, c.Preview); err != nil {
			return err
		}
		written = append(written, name)
	}

	if c.Pal {
		name := base + ".pal"
		if err = savePAL(c.Dest, name, res); err != nil {
			return err
		}
		written = append(written, name)
	}

	if c.JSON {
		name := base + ".json"
		err = save(c.Dest, name, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		})
		if err != nil {
			return err
		}
		written = append(written, name)
	}

	logger.Info("converted", "dir", c.Dest, "files", written)
	return nil
}

func saveChart(dir, name string, res *grid.Result, opts render.ChartOptions, format string) error {
	img, err := render.Chart(res, opts)
	if err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}
	return save(dir, name, func(w io.Writer) error {
		return render.Encode(w, img, format)
	})
}

func saveLegend(dir, name string, res *grid.Result) error {
	img, err := render.Legend(res, render.DefaultSwatchSize)
	if err != nil {
		return fmt.Errorf("could not render legend: %w", err)
	}
	return save(dir, name, func(w io.Writer) error {
		return render.Encode(w, img, "png")
	})
}

func savePreview(dir, name string, res *grid.Result, scale int) error {
	img, err := render.Preview(res, scale)
	if err != nil {
		return fmt.Errorf("could not render preview: %w", err)
	}
	return save(dir, name, func(w io.Writer) error {
		return render.Encode(w, img, "png")
	})
}

func savePAL(dir, name string, res *grid.Result) error {
	pal, err := res.Palette.Colors()
	if err != nil {
		return err
	}
	return save(dir, name, func(w io.Writer) error {
		_, err := palette.WritePAL(w, pal)
		return err
	})
}

// save writes through a temporary file renamed into place once write
// succeeds.
func save(destDir, destName string, write func(io.Writer) error) (err error) {
	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = errors.Join(err, fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr))
		}
		if defErr := outFile.Close(); defErr != nil {
			err = errors.Join(err, fmt.Errorf("could not close temporary destination %q: %w", destName, defErr))
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set mode of %q: %w", destName, err)
	}

	if err = write(outFile); err != nil {
		return fmt.Errorf("could not write %q: %w", destName, err)
	}

	canRename = true
	return nil
}
