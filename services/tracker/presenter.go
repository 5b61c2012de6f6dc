package tracker

import (
	"image/color"

	"joytracker/services/hal/halcore"
	"joytracker/types"
)

var (
	pixelOn  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pixelOff = color.RGBA{A: 255}
)

// Presenter draws the border and the square cursor on a monochrome canvas.
//
// The cursor position is owned by the control loop. Clear and DrawBorder only
// touch the canvas, so the dispatcher may call them from interrupt context.
type Presenter struct {
	c   halcore.Canvas
	geo Geometry

	// last drawn cursor, valid only when drawn is true
	cx, cy int
	drawn  bool
}

func NewPresenter(c halcore.Canvas, geo Geometry) *Presenter {
	return &Presenter{c: c, geo: geo}
}

// Draw erases the previous cursor, draws the new one and the border.
// Nothing becomes visible until Flush.
func (p *Presenter) Draw(x, y int, style types.BorderStyle) {
	p.MoveCursor(x, y)
	p.DrawBorder(style)
}

// MoveCursor erases the last cursor square (if any) and draws it at (x, y).
func (p *Presenter) MoveCursor(x, y int) {
	if p.drawn {
		p.square(p.cx, p.cy, pixelOff)
	}
	p.square(x, y, pixelOn)
	p.cx, p.cy, p.drawn = x, y, true
}

// Cursor reports the last drawn cursor position.
func (p *Presenter) Cursor() (x, y int, ok bool) {
	return p.cx, p.cy, p.drawn
}

// Clear blanks the whole buffer.
func (p *Presenter) Clear() {
	p.c.ClearBuffer()
}

// DrawBorder frames the canvas with the thickness of style.
func (p *Presenter) DrawBorder(style types.BorderStyle) {
	t := p.geo.Margin(style)
	w, h := p.geo.Width, p.geo.Height
	for i := 0; i < t; i++ {
		p.hline(i, w)
		p.hline(h-1-i, w)
		p.vline(i, h)
		p.vline(w-1-i, h)
	}
}

// Reframe clears the buffer and redraws the border for style.
func (p *Presenter) Reframe(style types.BorderStyle) {
	p.Clear()
	p.DrawBorder(style)
}

func (p *Presenter) Flush() error {
	return p.c.Display()
}

func (p *Presenter) hline(y, w int) {
	for x := 0; x < w; x++ {
		p.set(x, y, pixelOn)
	}
}

func (p *Presenter) vline(x, h int) {
	for y := 0; y < h; y++ {
		p.set(x, y, pixelOn)
	}
}

func (p *Presenter) square(x, y int, c color.RGBA) {
	n := p.geo.Cursor
	for dy := 0; dy < n; dy++ {
		for dx := 0; dx < n; dx++ {
			p.set(x+dx, y+dy, c)
		}
	}
}

func (p *Presenter) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.geo.Width || y >= p.geo.Height {
		return
	}
	p.c.SetPixel(int16(x), int16(y), c)
}
