package stickerlayers

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LayerStats summarizes a layer for the caller's layout step.
type LayerStats struct {
	Width, Height        int
	WidthIn, HeightIn    float64
	Coverage             float64 // alpha-weighted fraction of the canvas that is inked
	CentroidX, CentroidY float64
	// Balance is the horizontal offset of the centroid from the canvas center,
	// as a fraction of the width. Stand-up cuts with a bottom tab tip over
	// when it grows large.
	Balance float64
}

// Measure computes LayerStats for img printed at dpi.
func Measure(img *image.NRGBA, dpi float64) LayerStats {
	w, h := sizeOf(img)
	s := LayerStats{Width: w, Height: h}
	if dpi > 0 {
		s.WidthIn = float64(w) / dpi
		s.HeightIn = float64(h) / dpi
	}
	if w == 0 || h == 0 {
		return s
	}

	colWeight := make([]float64, w)
	rowWeight := make([]float64, h)
	for y := range h {
		for x := range w {
			a := float64(alphaAt(img, x, y)) / 255
			colWeight[x] += a
			rowWeight[y] += a
		}
	}
	total := floats.Sum(colWeight)
	s.Coverage = total / float64(w*h)
	if total == 0 {
		return s
	}

	xs := make([]float64, w)
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := make([]float64, h)
	for i := range ys {
		ys[i] = float64(i)
	}
	s.CentroidX = stat.Mean(xs, colWeight)
	s.CentroidY = stat.Mean(ys, rowWeight)
	s.Balance = (s.CentroidX - float64(w-1)/2) / float64(w)
	return s
}
