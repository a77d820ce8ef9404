package stickerlayers

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeToHeight scales img so that it prints height tall at dpi, keeping the
// aspect ratio. Resampling uses a Catmull-Rom cubic filter.
func ResizeToHeight(img image.Image, height Length, dpi float64) (*image.NRGBA, error) {
	w, h := sizeOf(img)
	if w == 0 || h == 0 {
		return nil, stageErr("resize", fmt.Errorf("%w: source is %dx%d", ErrInvalidDimensions, w, h))
	}
	th := height.Pixels(dpi)
	if th <= 0 {
		return nil, stageErr("resize", fmt.Errorf("%w: target height %d px", ErrInvalidDimensions, th))
	}
	tw := max(int(math.Round(float64(th)*float64(w)/float64(h))), 1)

	Logger().Debug("resizing subject",
		"from", fmt.Sprintf("%dx%d", w, h),
		"to", fmt.Sprintf("%dx%d", tw, th),
		"dpi", dpi,
	)
	if tw == w && th == h {
		return toNRGBA(img), nil
	}
	return imaging.Resize(img, tw, th, imaging.CatmullRom), nil
}
