package stickerlayers

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FillColor is one of the inks the layers are painted with. Black marks the
// printing layer, red marks the cut line.
type FillColor int

const (
	Black FillColor = iota
	Red
)

var fillColors = map[FillColor]colorful.Color{
	Black: mustHex("#000000"),
	Red:   mustHex("#ff0000"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c FillColor) String() string {
	switch c {
	case Red:
		return "red"
	default:
		return "black"
	}
}

// Colorful returns the color in go-colorful's representation.
func (c FillColor) Colorful() colorful.Color {
	return fillColors[c]
}

// NRGBA returns the fully opaque pixel value of c.
func (c FillColor) NRGBA() color.NRGBA {
	r, g, b := fillColors[c].Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// ParseFillColor accepts a color name or the hex form of a known ink.
func ParseFillColor(s string) (FillColor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "black", "":
		return Black, nil
	case "red":
		return Red, nil
	}
	if strings.HasPrefix(name, "#") {
		hc, err := colorful.Hex(name)
		if err == nil {
			for fc, c := range fillColors {
				if c.Hex() == hc.Hex() {
					return fc, nil
				}
			}
		}
	}
	return Black, fmt.Errorf("unsupported fill color %q (want black or red)", s)
}
