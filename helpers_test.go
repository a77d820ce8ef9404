package stickerlayers

import (
	"image"
	"image/color"
	"testing"
)

// newLayer returns a w x h transparent image with rect painted in c.
func newLayer(w, h int, rect image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func opaque(w, h int, c color.NRGBA) *image.NRGBA {
	return newLayer(w, h, image.Rect(0, 0, w, h), c)
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	teal  = color.NRGBA{R: 10, G: 120, B: 130, A: 255}
)

func assertSize(t *testing.T, img image.Image, w, h int) {
	t.Helper()
	if gw, gh := sizeOf(img); gw != w || gh != h {
		t.Fatalf("expected %dx%d, got %dx%d", w, h, gw, gh)
	}
}

func assertPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA) {
	t.Helper()
	if got := img.NRGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
	}
}
