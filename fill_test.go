package stickerlayers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFillSilhouette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 90})

	out := FillSilhouette(img, Red)
	assertPixel(t, out, 0, 0, color.NRGBA{255, 0, 0, 255})
	assertPixel(t, out, 1, 0, color.NRGBA{255, 0, 0, 90})
	assertPixel(t, out, 2, 0, color.NRGBA{})
	// input untouched
	assertPixel(t, img, 0, 0, color.NRGBA{10, 20, 30, 255})

	again := FillSilhouette(out, Red)
	if !bytes.Equal(again.Pix, out.Pix) {
		t.Error("expected a second fill to change nothing")
	}
}

func TestFillColumnsClosesGaps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 10))
	img.SetNRGBA(1, 2, color.NRGBA{A: 255})
	img.SetNRGBA(1, 8, color.NRGBA{A: 40})
	img.SetNRGBA(2, 5, color.NRGBA{A: 255})

	out := FillColumns(img, Red)
	ink := Red.NRGBA()
	for y := range 10 {
		assertPixel(t, out, 0, y, color.NRGBA{})
		if y >= 2 && y <= 8 {
			assertPixel(t, out, 1, y, ink)
		} else {
			assertPixel(t, out, 1, y, color.NRGBA{})
		}
	}
	assertPixel(t, out, 2, 5, ink)
	assertPixel(t, out, 2, 4, color.NRGBA{})
}

func TestFillColumnsWideImage(t *testing.T) {
	// Wide enough to run on several goroutines.
	img := newLayer(300, 20, image.Rect(0, 3, 300, 4), teal)
	for x := range 300 {
		img.SetNRGBA(x, 15, teal)
	}
	out := FillColumns(img, Black)
	box, ok := AlphaBounds(out, 255)
	if !ok || box != (BoundingBox{Left: 0, Top: 3, Right: 299, Bottom: 15}) {
		t.Fatalf("unexpected filled region %v (ok=%v)", box, ok)
	}
	for x := range 300 {
		if out.NRGBAAt(x, 9).A != 255 {
			t.Fatalf("column %d not filled", x)
		}
	}
}

func TestAddBottomTab(t *testing.T) {
	img := newLayer(300, 300, image.Rect(100, 50, 200, 150), teal)
	out, err := AddBottomTab(img, Inches(1), 96, Red)
	if err != nil {
		t.Fatalf("AddBottomTab: %v", err)
	}
	assertSize(t, out, 300, 300)
	ink := Red.NRGBA()
	for _, x := range []int{0, 150, 299} {
		assertPixel(t, out, x, 204, ink)
		assertPixel(t, out, x, 299, ink)
		assertPixel(t, out, x, 203, img.NRGBAAt(x, 203))
	}
	if !bytes.Equal(out.Pix[:204*out.Stride], img.Pix[:204*img.Stride]) {
		t.Error("rows above the tab changed")
	}
}

func TestAddBottomTabTallerThanImage(t *testing.T) {
	out, err := AddBottomTab(image.NewNRGBA(image.Rect(0, 0, 4, 4)), Inches(1), 96, Black)
	if err != nil {
		t.Fatalf("AddBottomTab: %v", err)
	}
	if box, ok := AlphaBounds(out, 255); !ok || box != (BoundingBox{0, 0, 3, 3}) {
		t.Errorf("expected the whole image covered, got %v", box)
	}
}

func TestAddBottomTabNegative(t *testing.T) {
	_, err := AddBottomTab(opaque(4, 4, teal), Inches(-1), 96, Black)
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}
