package stickerlayers

import "math"

const mmPerInch = 25.4

// Unit is the physical unit of a Length.
type Unit int

const (
	Millimeter Unit = iota
	Inch
)

func (u Unit) String() string {
	switch u {
	case Inch:
		return "in"
	default:
		return "mm"
	}
}

// Length is a physical distance that becomes a pixel count once a DPI is known.
type Length struct {
	Value float64
	Unit  Unit
}

func Millimeters(v float64) Length { return Length{Value: v, Unit: Millimeter} }
func Inches(v float64) Length      { return Length{Value: v, Unit: Inch} }

// Pixels converts l at dpi, rounding half away from zero.
func (l Length) Pixels(dpi float64) int {
	if l.Unit == Inch {
		return InToPx(l.Value, dpi)
	}
	return MmToPx(l.Value, dpi)
}

// InInches returns l expressed in inches.
func (l Length) InInches() float64 {
	if l.Unit == Inch {
		return l.Value
	}
	return l.Value / mmPerInch
}

// MmToPx returns round(mm/25.4*dpi).
func MmToPx(mm, dpi float64) int {
	return int(math.Round(mm / mmPerInch * dpi))
}

// InToPx returns round(in*dpi).
func InToPx(in, dpi float64) int {
	return int(math.Round(in * dpi))
}
