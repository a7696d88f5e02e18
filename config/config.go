// Package config holds the command line flags shared by the commands.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pixelart/grid"
)

// Grid carries the conversion settings. Values come from flags, the
// environment or the JSON configuration file, in that order.
type Grid struct {
	GridSize     int    `help:"Source pixels per cell edge, after normalization" default:"10" env:"PIXELART_GRID_SIZE"`
	MaxColors    int    `help:"Palette size cap, only enforced with --limit" default:"12" env:"PIXELART_MAX_COLORS"`
	Limit        string `help:"How to enforce max colors (${enum}). kmeans is randomly seeded and may differ between runs" enum:"none,merge,kmeans,dominant" default:"none" env:"PIXELART_LIMIT"`
	Resample     string `help:"Scaler used to normalize images (${enum})" enum:"bilinear,nearest,catmullrom,box" default:"bilinear" env:"PIXELART_RESAMPLE"`
	MaxDimension int    `help:"Bound of the larger normalized dimension" default:"800" env:"PIXELART_MAX_DIMENSION"`
}

func (g Grid) Config() (grid.Config, error) {
	limit, err := grid.ParseLimit(g.Limit)
	if err != nil {
		return grid.Config{}, err
	}
	resample, err := grid.ParseResampler(g.Resample)
	if err != nil {
		return grid.Config{}, err
	}

	cfg := grid.Config{
		GridSize:     g.GridSize,
		MaxColors:    g.MaxColors,
		Limit:        limit,
		Resample:     resample,
		MaxDimension: g.MaxDimension,
	}
	return cfg, cfg.Validate()
}

func (g Grid) Validate() error {
	_, err := g.Config()
	return err
}

// Source is an image file or a folder of images.
type Source struct {
	Scan string `arg:"" optional:"" help:"Image file or folder to scan" default:"." type:"path"`

	isDir bool `kong:"-"`
}

func (s *Source) Validate() error {
	path, err := filepath.Abs(s.Scan)
	var info os.FileInfo
	if err == nil {
		info, err = os.Stat(path)
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", s.Scan, err)
	}
	s.Scan = path
	s.isDir = info.IsDir()
	return nil
}

// Dir is the scanned folder, or the folder holding the scanned file.
func (s *Source) Dir() string {
	if s.isDir {
		return s.Scan
	}
	return filepath.Dir(s.Scan)
}

// Files lists the regular files to process.
func (s *Source) Files() ([]string, error) {
	if !s.isDir {
		return []string{s.Scan}, nil
	}

	entries, err := os.ReadDir(s.Scan)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", s.Scan, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(s.Scan, e.Name()))
	}
	return files, nil
}

type Logging struct {
	LogLevel  string `help:"Log level (${enum})" enum:"debug,info,warn,error" default:"info" env:"PIXELART_LOG_LEVEL"`
	LogFormat string `help:"Log format (${enum})" enum:"text,json" default:"text" env:"PIXELART_LOG_FORMAT"`
}

func (l Logging) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
