package utils

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// twoTone paints the left 3/4 red and the right 1/4 blue, with a transparent
// frame that must not appear in the palette.
func twoTone() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 44, 24))
	for y := 2; y < 22; y++ {
		for x := 2; x < 42; x++ {
			c := color.NRGBA{R: 230, G: 20, B: 20, A: 255}
			if x >= 32 {
				c = color.NRGBA{R: 20, G: 20, B: 230, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSubjectPalette(t *testing.T) {
	for _, method := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(method.String(), func(t *testing.T) {
			palette := SubjectPalette(twoTone(), 2, method)
			if len(palette) == 0 || len(palette) > 2 {
				t.Fatalf("expected 1 or 2 swatches, got %d", len(palette))
			}
			total := 0.0
			for i, sw := range palette {
				total += sw.Weight
				if i > 0 && sw.Weight > palette[i-1].Weight {
					t.Errorf("palette not sorted by weight: %+v", palette)
				}
			}
			if math.Abs(total-1) > 1e-9 {
				t.Errorf("weights sum to %v", total)
			}
			r, g, b := palette[0].Color.RGB255()
			if r < 128 || b > 128 || g > 128 {
				t.Errorf("expected red to dominate, got #%02x%02x%02x", r, g, b)
			}
		})
	}
}

func TestSubjectPaletteTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if got := SubjectPalette(img, 3, PaletteMethodDominantColor); len(got) != 0 {
		t.Errorf("expected empty palette, got %+v", got)
	}
	if got := SubjectPalette(img, 3, PaletteMethodKMeans); len(got) != 0 {
		t.Errorf("expected empty palette, got %+v", got)
	}
	if got := SubjectPalette(twoTone(), 0, PaletteMethodKMeans); got != nil {
		t.Errorf("expected nil for k=0, got %+v", got)
	}
}

func TestParsePaletteMethod(t *testing.T) {
	if ParsePaletteMethod("kmeans") != PaletteMethodKMeans {
		t.Error("kmeans not parsed")
	}
	if ParsePaletteMethod("anything") != PaletteMethodDominantColor {
		t.Error("expected dominantcolor fallback")
	}
}

func TestSortPaletteByBrightness(t *testing.T) {
	palette := SubjectPalette(twoTone(), 2, PaletteMethodDominantColor)
	SortPaletteByBrightness(palette)
	for i := 1; i < len(palette); i++ {
		if luminance(palette[i].Color) < luminance(palette[i-1].Color) {
			t.Fatalf("not sorted by luminance: %+v", palette)
		}
	}
}
