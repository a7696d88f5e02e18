package palette

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Swatch is a palette color weighted by the number of pixels it covers.
type Swatch struct {
	Color  color.RGBA
	Weight int
}

// The reducers below return, for every swatch, the index of the swatch that
// stands for it. Representatives map to themselves and there are at most k
// of them.

func identity(n int) []int {
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	return mapping
}

func labs(swatches []Swatch) labPalette {
	p := make(labPalette, len(swatches))
	for i, sw := range swatches {
		p[i] = toLab(sw.Color)
	}
	return p
}

// assign maps every swatch to its nearest representative.
func assign(all labPalette, reps []int) []int {
	sub := make(labPalette, len(reps))
	for i, r := range reps {
		sub[i] = all[r]
	}

	mapping := make([]int, len(all))
	for i, c := range all {
		mapping[i] = reps[sub.Index(c)]
	}
	return mapping
}

// Merge keeps the k heaviest swatches. Ties go to the earlier swatch.
func Merge(swatches []Swatch, k int) []int {
	if k <= 0 || len(swatches) <= k {
		return identity(len(swatches))
	}

	order := identity(len(swatches))
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(swatches[b].Weight, swatches[a].Weight)
	})
	kept := order[:k]
	slices.Sort(kept)

	return assign(labs(swatches), kept)
}

// maxSamples keeps k-means tractable on fine grids.
const maxSamples = 12000

// KMeans clusters the swatches in OKLab, each weighted by its pixel count,
// and picks the heaviest swatch of every cluster. The clustering is randomly
// seeded, so results can change between calls.
func KMeans(swatches []Swatch, k int) ([]int, error) {
	if k <= 0 || len(swatches) <= k {
		return identity(len(swatches)), nil
	}

	total := 0
	for _, sw := range swatches {
		total += sw.Weight
	}
	scale := 1.0
	if total > maxSamples {
		scale = float64(maxSamples) / float64(total)
	}

	all := labs(swatches)
	dataset := make(clusters.Observations, 0, min(total, maxSamples)+len(swatches))
	for i, sw := range swatches {
		n := max(1, int(float64(sw.Weight)*scale))
		for range n {
			dataset = append(dataset, clusters.Coordinates{all[i][0], all[i][1], all[i][2]})
		}
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("could not partition %d colors: %w", len(swatches), err)
	}

	centers := make(labPalette, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		centers = append(centers, lab{c.Center[0], c.Center[1], c.Center[2]})
	}
	if len(centers) == 0 {
		return Merge(swatches, k), nil
	}

	rep := make([]int, len(centers))
	for i := range rep {
		rep[i] = -1
	}
	member := make([]int, len(swatches))
	for i, sw := range swatches {
		ci := centers.Index(all[i])
		member[i] = ci
		if rep[ci] < 0 || sw.Weight > swatches[rep[ci]].Weight {
			rep[ci] = i
		}
	}

	mapping := make([]int, len(swatches))
	for i := range swatches {
		mapping[i] = rep[member[i]]
	}
	return mapping, nil
}

// Dominant uses the k dominant colors of img as anchors: the swatch nearest
// each anchor becomes a representative.
func Dominant(img image.Image, swatches []Swatch, k int) []int {
	if k <= 0 || len(swatches) <= k {
		return identity(len(swatches))
	}

	all := labs(swatches)
	var reps []int
	for _, c := range dominantcolor.FindWeight(img, k) {
		i := all.Index(toLab(c.RGBA))
		if !slices.Contains(reps, i) {
			reps = append(reps, i)
		}
	}
	if len(reps) == 0 {
		return Merge(swatches, k)
	}
	slices.Sort(reps)

	return assign(all, reps)
}
