package tracker

import (
	"joytracker/types"
	"joytracker/x/mathx"
)

// MapToDisplay maps a raw axis sample onto [0, axisMax] as
// floor(sample*axisMax/4095). Samples above 4095 saturate.
func MapToDisplay(sample uint16, axisMax int) int {
	return mathx.ScaleFloor(int(sample), types.SampleMax, axisMax)
}

// Intensity is |sample - 2048|: zero at rest, growing towards both ends of
// travel. Direction is deliberately discarded.
func Intensity(sample uint16) uint16 {
	s := mathx.Min(int32(sample), types.SampleMax)
	return uint16(mathx.Abs(s - types.SampleCenter))
}

// Geometry is the drawable area and what it reserves for the cursor glyph
// and the border. Travel is measured from the highest pixel index on each
// axis, so the glyph never reaches the far border row or column.
type Geometry struct {
	Width, Height int
	Cursor        int
	ThinMargin    int
	ThickMargin   int
}

// Margin is the border thickness for style.
func (g Geometry) Margin(s types.BorderStyle) int {
	if s == types.BorderThick {
		return g.ThickMargin
	}
	return g.ThinMargin
}

// X is the cursor column for a horizontal sample under style s.
func (g Geometry) X(sample uint16, s types.BorderStyle) int {
	return MapToDisplay(sample, g.Width-1-g.Cursor-g.Margin(s))
}

// Y is the cursor row for a vertical sample under style s. A larger sample
// moves the cursor up.
func (g Geometry) Y(sample uint16, s types.BorderStyle) int {
	top := g.Height - 1 - g.Cursor
	return top - MapToDisplay(sample, top-g.Margin(s))
}
