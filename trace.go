package stickerlayers

import (
	"bytes"
	"context"
	"fmt"
	"image"
)

// VectorDocument is a traced layer. Its viewport is the source raster's size,
// one unit per pixel, so it can be placed at the same physical size.
type VectorDocument struct {
	Width    int
	Height   int
	Contours []Contour
	SVG      []byte
}

// Outlines returns the number of outer contours, i.e. separate pieces.
func (d *VectorDocument) Outlines() int {
	n := 0
	for _, c := range d.Contours {
		if !c.Hole {
			n++
		}
	}
	return n
}

// Contour is a closed polygon running along pixel edges. Points are pixel
// corners; only corners where the direction changes are kept.
type Contour struct {
	Points []image.Point
	Hole   bool
}

// Area returns the enclosed area in pixels, negative for holes.
func (c Contour) Area() int {
	a := 0
	for i, p := range c.Points {
		q := c.Points[(i+1)%len(c.Points)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Tracer turns a finished raster layer into vector outlines.
type Tracer interface {
	Trace(ctx context.Context, img *image.NRGBA) (*VectorDocument, error)
}

// ContourTracer outlines the ink of a layer exactly along pixel edges, which
// is what a plotter cutting a flat-filled layer needs. Pixels with alpha >=
// Threshold are ink; a zero Threshold means alpha > 0. Diagonally touching
// ink pixels are separate pieces.
type ContourTracer struct {
	Threshold uint8
}

func (t ContourTracer) Trace(ctx context.Context, img *image.NRGBA) (*VectorDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, stageErr("trace", err)
	}
	w, h := sizeOf(img)
	if w == 0 || h == 0 {
		return nil, stageErr("trace", ErrInvalidDimensions)
	}

	threshold := max(t.Threshold, 1)
	ink := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && alphaAt(img, x, y) >= threshold
	}
	contours := traceContours(w, h, ink)
	if err := ctx.Err(); err != nil {
		return nil, stageErr("trace", err)
	}

	fill := "#000000"
	if box, ok := AlphaBounds(img, threshold); ok {
		c := img.NRGBAAt(box.Left, box.Top)
		for x := box.Left; x <= box.Right; x++ {
			if ink(x, box.Top) {
				c = img.NRGBAAt(x, box.Top)
				break
			}
		}
		fill = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}

	Logger().Debug("layer traced",
		"size", fmt.Sprintf("%dx%d", w, h),
		"contours", len(contours),
	)
	return &VectorDocument{
		Width:    w,
		Height:   h,
		Contours: contours,
		SVG:      renderSVG(w, h, fill, contours),
	}, nil
}

// Edge directions in image coordinates (y grows downwards).
const (
	east = iota
	south
	west
	north
)

var steps = [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// traceContours collects the boundary edges of the ink, each directed so the
// ink lies on its right, and links them into closed loops. At a corner shared
// by two diagonal ink pixels the walk turns right, keeping the pixels apart.
// Outer contours then run clockwise on screen (positive area), holes
// counter-clockwise.
func traceContours(w, h int, ink func(x, y int) bool) []Contour {
	stride := w + 1
	out := make([]uint8, stride*(h+1))
	for y := range h {
		for x := range w {
			if !ink(x, y) {
				continue
			}
			if !ink(x, y-1) {
				out[y*stride+x] |= 1 << east
			}
			if !ink(x+1, y) {
				out[y*stride+x+1] |= 1 << south
			}
			if !ink(x, y+1) {
				out[(y+1)*stride+x+1] |= 1 << west
			}
			if !ink(x-1, y) {
				out[(y+1)*stride+x] |= 1 << north
			}
		}
	}

	all := bytes.Clone(out)
	var contours []Contour
	for v := range out {
		for out[v] != 0 {
			start := image.Pt(v%stride, v/stride)
			first := lowestBit(out[v])
			contours = append(contours, walk(start, first, all, out, stride))
		}
	}
	return contours
}

// walk follows edges from start until the loop closes, clearing them in left.
func walk(start image.Point, first int, all, left []uint8, stride int) Contour {
	var pts []image.Point
	p, d := start, first
	for {
		left[p.Y*stride+p.X] &^= 1 << d
		p = p.Add(steps[d])
		next := turn(all[p.Y*stride+p.X], d)
		if next != d {
			pts = append(pts, p)
		}
		if p == start && next == first {
			break
		}
		d = next
	}
	c := Contour{Points: pts}
	c.Hole = c.Area() < 0
	return c
}

// turn picks the outgoing edge after arriving in direction d: right, then
// straight, then left.
func turn(edges uint8, d int) int {
	for _, nd := range [3]int{(d + 1) % 4, d, (d + 3) % 4} {
		if edges&(1<<nd) != 0 {
			return nd
		}
	}
	return d
}

func lowestBit(b uint8) int {
	for i := range 4 {
		if b&(1<<i) != 0 {
			return i
		}
	}
	return 0
}

func renderSVG(w, h int, fill string, contours []Contour) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	if len(contours) > 0 {
		fmt.Fprintf(&buf, `<path fill="%s" fill-rule="evenodd" d="`, fill)
		for i, c := range contours {
			if i > 0 {
				buf.WriteByte(' ')
			}
			for j, p := range c.Points {
				cmd := 'L'
				if j == 0 {
					cmd = 'M'
				}
				fmt.Fprintf(&buf, "%c%d %d", cmd, p.X, p.Y)
			}
			buf.WriteByte('Z')
		}
		buf.WriteString(`"/>`)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
