package stickerlayers

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// BoundingBox holds inclusive pixel coordinates.
type BoundingBox struct {
	Left, Top, Right, Bottom int
}

func (b BoundingBox) Width() int  { return b.Right - b.Left + 1 }
func (b BoundingBox) Height() int { return b.Bottom - b.Top + 1 }

// Rect returns the half-open rectangle covering b.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right+1, b.Bottom+1)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// AlphaBounds finds the tight box around pixels with alpha >= threshold.
// ok is false when no pixel qualifies.
func AlphaBounds(img *image.NRGBA, threshold uint8) (box BoundingBox, ok bool) {
	w, h := sizeOf(img)
	origin := img.Bounds().Min
	top, left := h, w
	right, bottom := -1, -1
	for y := range h {
		off := img.PixOffset(origin.X, origin.Y+y)
		pix := img.Pix[off : off+w*4]
		for x := range w {
			if pix[x*4+3] < threshold {
				continue
			}
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
			if y < top {
				top = y
			}
			bottom = y
		}
	}
	if right < 0 {
		return BoundingBox{}, false
	}
	return BoundingBox{Left: left, Top: top, Right: right, Bottom: bottom}, true
}

// Trim crops img to the bounding box of pixels with alpha >= threshold.
// An image with no such pixel fails with ErrEmptyRegion.
func Trim(img image.Image, threshold uint8) (*image.NRGBA, error) {
	src := toNRGBA(img)
	box, ok := AlphaBounds(src, threshold)
	if !ok {
		return nil, stageErr("trim", ErrEmptyRegion)
	}
	return imaging.Crop(src, box.Rect()), nil
}

// Crop cuts rect (in image coordinates relative to the top-left corner) out
// of img without scaling. The rectangle is clipped to the image.
func Crop(img image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	w, h := sizeOf(img)
	r := rect.Intersect(image.Rect(0, 0, w, h))
	if r.Empty() {
		return nil, stageErr("crop", ErrEmptyRegion)
	}
	return imaging.Crop(toNRGBA(img), r), nil
}
