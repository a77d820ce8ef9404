package stickerlayers

import (
	"fmt"
	"image"
)

// ApplyMask returns a copy of img whose alpha channel is replaced by mask.
// RGB is copied unchanged. The mask must match the image size exactly; it is
// never resampled.
func ApplyMask(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	if mask == nil {
		return nil, stageErr("composite", fmt.Errorf("%w: nil mask", ErrDimensionMismatch))
	}
	w, h := sizeOf(img)
	mw, mh := sizeOf(mask)
	if w != mw || h != mh {
		return nil, stageErr("composite", ErrDimensionMismatch)
	}
	out := toNRGBA(img)
	mb := mask.Bounds()
	for y := range h {
		off := mask.PixOffset(mb.Min.X, mb.Min.Y+y)
		row := mask.Pix[off : off+w]
		pix := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x, a := range row {
			pix[x*4+3] = a
		}
	}
	return out, nil
}
