package stickerlayers

import (
	"fmt"
	"image"
)

// FillSilhouette returns a copy of img with every visible pixel recolored to
// c. The alpha channel is kept as is; fully transparent pixels are left
// untouched.
func FillSilhouette(img image.Image, c FillColor) *image.NRGBA {
	out := toNRGBA(img)
	w, h := sizeOf(out)
	ink := c.NRGBA()
	parallelRange(h, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			row := out.Pix[y*out.Stride : y*out.Stride+w*4]
			for x := 0; x < len(row); x += 4 {
				if row[x+3] == 0 {
					continue
				}
				row[x], row[x+1], row[x+2] = ink.R, ink.G, ink.B
			}
		}
	})
	return out
}

// FillColumns fills, in every column, the whole span between the topmost and
// the bottommost visible pixel with opaque c, closing any gap between them.
// Columns without a visible pixel stay transparent. The outline produced this
// way has no holes, which is what a cutting plotter needs.
func FillColumns(img image.Image, c FillColor) *image.NRGBA {
	src := toNRGBA(img)
	w, h := sizeOf(src)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	ink := c.NRGBA()
	parallelRange(w, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			top, bottom := -1, -1
			for y := range h {
				if alphaAt(src, x, y) > 0 {
					if top < 0 {
						top = y
					}
					bottom = y
				}
			}
			if top < 0 {
				continue
			}
			for y := top; y <= bottom; y++ {
				i := y*out.Stride + x*4
				out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = ink.R, ink.G, ink.B, 255
			}
		}
	})
	return out
}

// AddBottomTab paints an opaque bar of the given height across the full width
// at the bottom of img. The canvas keeps its size; the bar covers whatever was
// there. A bar taller than the image covers all of it.
func AddBottomTab(img image.Image, height Length, dpi float64, c FillColor) (*image.NRGBA, error) {
	px := height.Pixels(dpi)
	if px < 0 {
		return nil, stageErr("tab", fmt.Errorf("%w: negative tab height %v%s", ErrInvalidDimensions, height.Value, height.Unit))
	}
	out := toNRGBA(img)
	w, h := sizeOf(out)
	ink := c.NRGBA()
	for y := max(h-px, 0); y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = ink.R, ink.G, ink.B, 255
		}
	}
	return out, nil
}
