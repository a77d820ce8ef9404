package stickerlayers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestTrimSquare(t *testing.T) {
	img := newLayer(100, 100, image.Rect(30, 30, 70, 70), teal)
	out, err := Trim(img, 1)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	assertSize(t, out, 40, 40)
	for y := range 40 {
		for x := range 40 {
			if out.NRGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) not opaque", x, y)
			}
		}
	}
}

func TestTrimThresholdIsInclusive(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 3, color.NRGBA{A: 149})
	img.SetNRGBA(5, 6, color.NRGBA{A: 150})
	img.SetNRGBA(7, 7, color.NRGBA{A: 150})

	box, ok := AlphaBounds(img, 150)
	if !ok {
		t.Fatal("expected a region")
	}
	want := BoundingBox{Left: 5, Top: 6, Right: 7, Bottom: 7}
	if box != want {
		t.Errorf("expected %v, got %v", want, box)
	}
	if box.Width() != 3 || box.Height() != 2 {
		t.Errorf("unexpected box size %dx%d", box.Width(), box.Height())
	}
}

func TestTrimIsStable(t *testing.T) {
	blob := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 6; y < 35; y++ {
		for x := 9; x < 32; x++ {
			if (x+y)%3 != 0 {
				blob.SetNRGBA(x, y, color.NRGBA{R: 90, A: uint8(5 + (x*y)%200)})
			}
		}
	}
	// below the threshold, must not widen the box
	blob.SetNRGBA(1, 1, color.NRGBA{A: 3})
	blob.SetNRGBA(38, 39, color.NRGBA{A: 4})

	tests := []struct {
		name      string
		threshold uint8
	}{
		{"visible", 1},
		{"threshold five", 5},
		{"cropper default", 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Trim(blob, tt.threshold)
			if err != nil {
				t.Fatalf("Trim: %v", err)
			}
			w, h := sizeOf(first)
			edgeHit := func(xs, ys []int) bool {
				for _, y := range ys {
					for _, x := range xs {
						if alphaAt(first, x, y) >= tt.threshold {
							return true
						}
					}
				}
				return false
			}
			all := func(n int) []int {
				s := make([]int, n)
				for i := range s {
					s[i] = i
				}
				return s
			}
			if !edgeHit(all(w), []int{0}) || !edgeHit(all(w), []int{h - 1}) ||
				!edgeHit([]int{0}, all(h)) || !edgeHit([]int{w - 1}, all(h)) {
				t.Errorf("an edge of the %dx%d result has no pixel at alpha >= %d", w, h, tt.threshold)
			}

			second, err := Trim(first, tt.threshold)
			if err != nil {
				t.Fatalf("second Trim: %v", err)
			}
			if second.Bounds() != first.Bounds() || !bytes.Equal(second.Pix, first.Pix) {
				t.Errorf("trimming again changed the image: %v -> %v", first.Bounds(), second.Bounds())
			}
		})
	}

	first, err := Trim(blob, 5)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if w, h := sizeOf(first); w > 23 || h > 29 {
		t.Errorf("stray pixels below the threshold widened the box to %dx%d", w, h)
	}
}

func TestTrimEmpty(t *testing.T) {
	_, err := Trim(image.NewNRGBA(image.Rect(0, 0, 8, 8)), 1)
	if !errors.Is(err, ErrEmptyRegion) {
		t.Fatalf("expected ErrEmptyRegion, got %v", err)
	}
}

func TestTrimSubImage(t *testing.T) {
	base := newLayer(20, 20, image.Rect(12, 12, 14, 15), teal)
	sub := base.SubImage(image.Rect(10, 10, 20, 20)).(*image.NRGBA)
	box, ok := AlphaBounds(sub, 1)
	if !ok {
		t.Fatal("expected a region")
	}
	if box != (BoundingBox{Left: 2, Top: 2, Right: 3, Bottom: 4}) {
		t.Errorf("unexpected box %v", box)
	}
	out, err := Trim(sub, 1)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	assertSize(t, out, 2, 3)
}

func TestCrop(t *testing.T) {
	img := newLayer(10, 10, image.Rect(0, 0, 5, 5), teal)
	out, err := Crop(img, image.Rect(3, 3, 20, 20))
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	assertSize(t, out, 7, 7)
	assertPixel(t, out, 0, 0, teal)
	assertPixel(t, out, 2, 2, color.NRGBA{})

	if _, err := Crop(img, image.Rect(20, 20, 30, 30)); !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("expected ErrEmptyRegion, got %v", err)
	}
}
