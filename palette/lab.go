package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type lab [3]float64

func toLab(c color.Color) lab {
	col, _ := colorful.MakeColor(c)
	l, a, b := col.OkLab()
	return lab{l, a, b}
}

// labPalette finds nearest colors by euclidean distance in OKLab.
type labPalette []lab

func (p labPalette) Index(c lab) int {
	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p {
		dL := c[0] - v[0]
		da := c[1] - v[1]
		db := c[2] - v[2]
		sum := dL*dL + da*da + db*db
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}
