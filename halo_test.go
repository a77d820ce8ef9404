package stickerlayers

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestAddBorderSevenMillimeters(t *testing.T) {
	src := opaque(100, 100, teal)
	out, err := AddBorder(src, Millimeters(7), 300, Black)
	if err != nil {
		t.Fatalf("AddBorder: %v", err)
	}
	// 7mm at 300dpi is 83px on every side.
	assertSize(t, out, 266, 266)

	ink := Black.NRGBA()
	for _, y := range []int{83, 130, 182} {
		assertPixel(t, out, 83-41, y, ink)
		assertPixel(t, out, 83-42, y, color.NRGBA{})
		assertPixel(t, out, 182+41, y, ink)
		assertPixel(t, out, 182+42, y, color.NRGBA{})
	}
	assertPixel(t, out, 130, 83-41, ink)
	assertPixel(t, out, 130, 83-42, color.NRGBA{})

	// Corners lie beyond the radius of the nearest subject corner.
	for _, p := range []image.Point{{0, 0}, {265, 0}, {0, 265}, {265, 265}, {83 - 30, 83 - 30}} {
		assertPixel(t, out, p.X, p.Y, color.NRGBA{})
	}
	assertPixel(t, out, 83-29, 83-29, ink)

	// The subject sits unchanged at the border offset.
	assertPixel(t, out, 83, 83, teal)
	assertPixel(t, out, 182, 182, teal)
	assertPixel(t, out, 130, 140, teal)
}

func TestAddBorderKeepsSubjectOnTop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 128})
	out, err := AddBorder(src, Inches(2), 1, Black)
	if err != nil {
		t.Fatalf("AddBorder: %v", err)
	}
	assertSize(t, out, 7, 7)
	// half-transparent white over black ink
	assertPixel(t, out, 3, 3, color.NRGBA{128, 128, 128, 255})
	assertPixel(t, out, 2, 3, Black.NRGBA())
	assertPixel(t, out, 2, 2, color.NRGBA{})
}

func TestAddBorderZeroMargin(t *testing.T) {
	src := newLayer(5, 5, image.Rect(1, 1, 3, 3), teal)
	out, err := AddBorder(src, Millimeters(0), 300, Red)
	if err != nil {
		t.Fatalf("AddBorder: %v", err)
	}
	assertSize(t, out, 5, 5)
	assertPixel(t, out, 0, 0, color.NRGBA{})
	assertPixel(t, out, 1, 1, teal)
}

func TestAddBorderInvalid(t *testing.T) {
	if _, err := AddBorder(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Millimeters(7), 300, Black); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty source: expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := AddBorder(opaque(4, 4, teal), Millimeters(-7), 300, Black); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative margin: expected ErrInvalidDimensions, got %v", err)
	}
}

func TestAddBorderTransparentSource(t *testing.T) {
	out, err := AddBorder(image.NewNRGBA(image.Rect(0, 0, 4, 4)), Inches(2), 1, Black)
	if err != nil {
		t.Fatalf("AddBorder: %v", err)
	}
	if _, ok := AlphaBounds(out, 1); ok {
		t.Error("expected no halo around a fully transparent source")
	}
}

func TestSquaredDistancesMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 37, 23
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var seeds []image.Point
	for range 12 {
		p := image.Pt(rng.Intn(w), rng.Intn(h))
		img.SetNRGBA(p.X, p.Y, color.NRGBA{A: uint8(1 + rng.Intn(255))})
		seeds = append(seeds, p)
	}

	d := squaredDistances(img)
	for y := range h {
		for x := range w {
			best := -1
			for _, s := range seeds {
				dx, dy := x-s.X, y-s.Y
				if v := dx*dx + dy*dy; best < 0 || v < best {
					best = v
				}
			}
			if got := d[y*w+x]; got != float64(best) {
				t.Fatalf("(%d,%d): expected %d, got %v", x, y, best, got)
			}
		}
	}
}
