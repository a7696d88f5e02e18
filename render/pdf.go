package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF writes one page per image, each page sized to its image at one
// point per pixel.
func WritePDF(w io.Writer, pages ...image.Image) error {
	if len(pages) == 0 {
		return ErrNoData
	}

	first := pages[0].Bounds()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(first.Dx()), Ht: float64(first.Dy())},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("could not encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page%d", i)
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		b := img.Bounds()
		wd, ht := float64(b.Dx()), float64(b.Dy())
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: wd, Ht: ht})
		pdf.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("could not write PDF: %w", err)
	}
	return nil
}
