package stickerlayers

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// edtInf stands in for "no opaque pixel seen yet" in the distance transform.
const edtInf = 1e20

// AddBorder grows the canvas by margin on every side, centers img on it and
// paints a halo in color c behind the subject. A canvas pixel belongs to the
// halo when it lies within margin/2 (Euclidean, in pixels) of a pixel with
// alpha > 0. The halo never covers the subject: subject pixels are composited
// over it. The result is not trimmed.
func AddBorder(img image.Image, margin Length, dpi float64, c FillColor) (*image.NRGBA, error) {
	src := toNRGBA(img)
	w, h := sizeOf(src)
	if w == 0 || h == 0 {
		return nil, stageErr("border", ErrInvalidDimensions)
	}
	border := margin.Pixels(dpi)
	if border < 0 {
		return nil, stageErr("border", fmt.Errorf("%w: negative margin %v%s", ErrInvalidDimensions, margin.Value, margin.Unit))
	}

	cw, ch := w+2*border, h+2*border
	canvas := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	draw.Copy(canvas, image.Pt(border, border), src, src.Bounds(), draw.Src, nil)
	if border == 0 {
		return canvas, nil
	}

	radius := float64(border) / 2
	limit := radius * radius
	dist := squaredDistances(canvas)
	ink := c.NRGBA()

	parallelRange(ch, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+cw*4]
			for x := range cw {
				if dist[y*cw+x] > limit {
					continue
				}
				paintBehind(row[x*4:x*4+4], ink)
			}
		}
	})

	Logger().Debug("border halo painted",
		"border_px", border,
		"radius_px", radius,
		"canvas", fmt.Sprintf("%dx%d", cw, ch),
	)
	return canvas, nil
}

// paintBehind composites the opaque ink under the pixel p (non-premultiplied
// RGBA), i.e. p over ink.
func paintBehind(p []uint8, ink color.NRGBA) {
	a := uint32(p[3])
	switch a {
	case 255:
		return
	case 0:
		p[0], p[1], p[2], p[3] = ink.R, ink.G, ink.B, 255
		return
	}
	ia := 255 - a
	p[0] = uint8((uint32(p[0])*a + uint32(ink.R)*ia + 127) / 255)
	p[1] = uint8((uint32(p[1])*a + uint32(ink.G)*ia + 127) / 255)
	p[2] = uint8((uint32(p[2])*a + uint32(ink.B)*ia + 127) / 255)
	p[3] = 255
}

// squaredDistances returns, per pixel, the squared Euclidean distance to the
// nearest pixel with alpha > 0. Pixels of an empty image all get ~edtInf.
func squaredDistances(img *image.NRGBA) []float64 {
	w, h := sizeOf(img)
	d := make([]float64, w*h)
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			if row[x*4+3] == 0 {
				d[y*w+x] = edtInf
			}
		}
	}

	// columns
	parallelRange(w, func(lo, hi int) {
		f := make([]float64, h)
		out := make([]float64, h)
		env := newEnvelope(h)
		for x := lo; x < hi; x++ {
			for y := range h {
				f[y] = d[y*w+x]
			}
			env.transform(f, out)
			for y := range h {
				d[y*w+x] = out[y]
			}
		}
	})

	// rows
	parallelRange(h, func(lo, hi int) {
		out := make([]float64, w)
		env := newEnvelope(w)
		for y := lo; y < hi; y++ {
			row := d[y*w : (y+1)*w]
			env.transform(row, out)
			copy(row, out)
		}
	})
	return d
}

// envelope is scratch space for the lower envelope of parabolas used by the
// 1-D squared distance transform (Felzenszwalb and Huttenlocher).
type envelope struct {
	v []int
	z []float64
}

func newEnvelope(n int) *envelope {
	return &envelope{v: make([]int, n), z: make([]float64, n+1)}
}

func (e *envelope) transform(f, out []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	v, z := e.v, e.z
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := parabolaIntersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = parabolaIntersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := range n {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		out[q] = dq*dq + f[v[k]]
	}
}

func parabolaIntersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
