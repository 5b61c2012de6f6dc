package tracker

import (
	"image/color"
	"time"

	"joytracker/types"
)

// fakeCanvas is a 1-bit framebuffer that counts flushes and clears.
type fakeCanvas struct {
	w, h    int
	px      []bool
	flushes int
	clears  int

	// onSet runs before each SetPixel; used to inject an "interrupt".
	onSet func()
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, px: make([]bool, w*h)}
}

func (c *fakeCanvas) Size() (int16, int16) { return int16(c.w), int16(c.h) }
func (c *fakeCanvas) SetPixel(x, y int16, col color.RGBA) {
	if c.onSet != nil {
		f := c.onSet
		c.onSet = nil
		f()
	}
	c.px[int(y)*c.w+int(x)] = col.R != 0 || col.G != 0 || col.B != 0
}
func (c *fakeCanvas) Display() error { c.flushes++; return nil }
func (c *fakeCanvas) ClearBuffer() {
	c.clears++
	for i := range c.px {
		c.px[i] = false
	}
}
func (c *fakeCanvas) at(x, y int) bool { return c.px[y*c.w+x] }
func (c *fakeCanvas) lit() int {
	n := 0
	for _, on := range c.px {
		if on {
			n++
		}
	}
	return n
}

// fakeLEDs records the current duty and every write.
type fakeLEDs struct {
	duty   [types.NumChannels]uint16
	writes int

	// onSet runs after each write; used to inject an "interrupt".
	onSet func(ch types.Channel, duty uint16)
}

func (l *fakeLEDs) SetDuty(ch types.Channel, duty uint16) {
	l.duty[ch] = duty
	l.writes++
	if l.onSet != nil {
		l.onSet(ch, duty)
	}
}

type fakeAxes struct{ x, y uint16 }

func (a *fakeAxes) Sample(axis types.Axis) uint16 {
	if axis == types.AxisX {
		return a.x
	}
	return a.y
}

type fakeBoot struct{ entered int }

func (b *fakeBoot) EnterBootloader() { b.entered++ }

// manualClock is advanced explicitly by tests.
type manualClock struct{ now time.Duration }

func (c *manualClock) Now() time.Duration      { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now += d }
func (c *manualClock) clock() Clock            { return c.Now }

var testGeo = Geometry{Width: 128, Height: 64, Cursor: 8, ThinMargin: 1, ThickMargin: 3}

type rig struct {
	st     *State
	canvas *fakeCanvas
	leds   *fakeLEDs
	axes   *fakeAxes
	boot   *fakeBoot
	clk    *manualClock
	pres   *Presenter
	disp   *Dispatcher
	loop   *Loop
}

func newRig(shared bool) *rig {
	r := &rig{
		st:     &State{},
		canvas: newFakeCanvas(testGeo.Width, testGeo.Height),
		leds:   &fakeLEDs{},
		axes:   &fakeAxes{x: types.SampleCenter, y: types.SampleCenter},
		boot:   &fakeBoot{},
		clk:    &manualClock{now: time.Second},
	}
	r.pres = NewPresenter(r.canvas, testGeo)
	r.disp = NewDispatcher(r.st, r.leds, r.pres, r.boot, DispatchConfig{
		Debounce:  200 * time.Millisecond,
		Shared:    shared,
		GreenDuty: 1024,
		Now:       r.clk.clock(),
	})
	r.loop = NewLoop(r.st, r.axes, r.leds, r.pres, testGeo, time.Millisecond)
	return r
}
