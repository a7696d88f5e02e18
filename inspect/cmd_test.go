package inspect

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelart/config"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func command(scan string) *CLICmd {
	return &CLICmd{
		Source: config.Source{Scan: scan},
		Grid: config.Grid{
			GridSize:     10,
			MaxColors:    12,
			Limit:        "none",
			Resample:     "bilinear",
			MaxDimension: 800,
		},
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), 1600, 800)
	writePNG(t, filepath.Join(dir, "tiny.png"), 5, 5)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := command(dir)
	require.NoError(t, c.Validate(nil))
	require.NoError(t, c.Run(logger))

	out := buf.String()
	assert.Contains(t, out, "normalized=800x400 rows=40 cols=80")
	assert.Contains(t, out, "grid larger than image")
	assert.Contains(t, out, "images=1 empty=1 errors=0 total=2")
}

func TestInfoErrors(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ok.png"), 100, 100)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := command(dir)
	require.NoError(t, c.Validate(nil))
	assert.EqualError(t, c.Run(logger), "error reading 1 files")
	assert.Equal(t, 1, strings.Count(buf.String(), "could not read image"))
}
