package stickerlayers

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// toNRGBA returns an owned, origin-anchored NRGBA copy of img. Stages never
// write into their input.
func toNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// MaskFromImage converts any decoded image into an 8-bit opacity mask, using
// its gray level. Segmentation models emit masks as grayscale images.
func MaskFromImage(img image.Image) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			mask.Pix[y*mask.Stride+x] = g.Y
		}
	}
	return mask
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.Pix[y*img.Stride+x*4+3]
}

func sizeOf(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
