package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

type labeler struct {
	ctx  *freetype.Context
	face font.Face
}

func newLabeler(dst draw.Image, size float64) (*labeler, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetHinting(font.HintingFull)

	return &labeler{
		ctx: ctx,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// draw writes text vertically centered in box, horizontally centered or
// left aligned.
func (l *labeler) draw(box image.Rectangle, text string, fg color.Color, center bool) error {
	l.ctx.SetSrc(image.NewUniform(fg))

	m := l.face.Metrics()
	x := fixed.I(box.Min.X)
	if center {
		x += (fixed.I(box.Dx()) - font.MeasureString(l.face, text)) / 2
	}
	y := fixed.I(box.Min.Y) + (fixed.I(box.Dy())+m.Ascent-m.Descent)/2

	_, err := l.ctx.DrawString(text, fixed.Point26_6{X: x, Y: y})
	return err
}

// textColor picks black or white, whichever reads better on bg.
func textColor(bg color.Color) color.Color {
	c, _ := colorful.MakeColor(bg)
	if l, _, _ := c.Lab(); l < 0.5 {
		return color.White
	}
	return color.Black
}

func hexColor(c color.Color) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
