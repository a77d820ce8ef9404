package utils

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	lb "github.com/setanarut/stickerlayers"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps a method name to its value; unknown names fall
// back to dominantcolor.
func ParsePaletteMethod(s string) PaletteMethod {
	if s == "kmeans" {
		return PaletteMethodKMeans
	}
	return PaletteMethodDominantColor
}

// Swatch is a palette color with its share of the subject, in [0,1].
type Swatch struct {
	Color  colorful.Color
	Weight float64
}

// SubjectPalette extracts up to k colors from the visible part of img,
// heaviest first. Pixels with alpha below 128 are ignored so the transparent
// background does not show up as a color.
func SubjectPalette(img image.Image, k int, method PaletteMethod) []Swatch {
	if k <= 0 {
		return nil
	}
	var out []Swatch
	switch method {
	case PaletteMethodKMeans:
		out = kmeansPalette(img, k)
		if len(out) == 0 {
			lb.Logger().Warn("kmeans returned an empty palette, falling back to dominantcolor")
			out = dominantPalette(img, k)
		}
	default:
		out = dominantPalette(img, k)
	}
	normalizeWeights(out)
	slices.SortStableFunc(out, func(a, b Swatch) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	return out
}

// SortPaletteByBrightness orders swatches from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []Swatch) {
	slices.SortFunc(palette, func(a, b Swatch) int {
		ya, yb := luminance(a.Color), luminance(b.Color)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// opaqueOnly keeps the visible pixels of img at full opacity and clears the
// rest. It reports whether any pixel was kept.
func opaqueOnly(img image.Image) (*image.NRGBA, bool) {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	found := false
	for y := range b.Dy() {
		for x := range b.Dx() {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			c.A = 255
			out.SetNRGBA(x, y, c)
			found = true
		}
	}
	return out, found
}

func dominantPalette(img image.Image, k int) []Swatch {
	subject, ok := opaqueOnly(img)
	if !ok {
		return nil
	}
	candidates := dominantcolor.FindWeight(subject, max(24, k*8))
	weighted := make([]Swatch, 0, len(candidates))
	for _, c := range candidates {
		// dominantcolor skips pixels with zero alpha when clustering
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, Swatch{Color: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return selectDiverse(weighted, k)
}

func kmeansPalette(img image.Image, k int) []Swatch {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	const maxSamples = 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil {
		lb.Logger().Debug("kmeans partition failed", slog.Any("error", err))
		return nil
	}

	weighted := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, Swatch{Color: col, Weight: float64(len(c.Observations))})
	}
	return selectDiverse(weighted, k)
}

// selectDiverse greedily picks k swatches: the heaviest first, then whichever
// candidate is farthest in Lab from those already picked, favouring heavier
// candidates.
func selectDiverse(cands []Swatch, k int) []Swatch {
	if len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	best := 0
	for i, c := range cands {
		if c.Weight > maxW {
			maxW = c.Weight
			best = i
		}
	}

	picked := []int{best}
	used := make([]bool, len(cands))
	used[best] = true
	for len(picked) < k {
		bestIdx, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, p := range picked {
				nearest = min(nearest, c.Color.DistanceLab(cands[p].Color))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				bestScore, bestIdx = score, i
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		picked = append(picked, bestIdx)
	}

	out := make([]Swatch, len(picked))
	for i, p := range picked {
		out[i] = cands[p]
	}
	return out
}

func normalizeWeights(s []Swatch) {
	total := 0.0
	for _, sw := range s {
		total += sw.Weight
	}
	if total <= 0 {
		return
	}
	for i := range s {
		s[i].Weight /= total
	}
}
