//go:build !rp2040

package provider

import (
	"image/color"
	"math"
	"sync"
	"sync/atomic"

	"joytracker/services/hal/halcore"
	"joytracker/types"

	"tinygo.org/x/drivers"
)

// Host builds run against simulated peripherals so the firmware can be
// exercised on a workstation.

var (
	_ halcore.IRQPin      = (*SimButton)(nil)
	_ halcore.PWMChannel  = (*SimPWM)(nil)
	_ halcore.AxisSampler = (*SimJoystick)(nil)
	_ halcore.Canvas      = (*SimDisplay)(nil)
	_ drivers.Displayer   = (*SimDisplay)(nil)
)

// -----------------------------------------------------------------------------
// Buttons
// -----------------------------------------------------------------------------

// SimButton is an active-low push button whose interrupts are raised by Press.
type SimButton struct {
	mu      sync.Mutex
	n       int
	pull    halcore.Pull
	level   bool
	edge    halcore.Edge
	handler func(halcore.Edge)
}

func NewSimButton(n int) *SimButton { return &SimButton{n: n, level: true} }

func (b *SimButton) Number() int { return b.n }
func (b *SimButton) Get() bool   { b.mu.Lock(); defer b.mu.Unlock(); return b.level }

func (b *SimButton) ConfigureInput(pull halcore.Pull) error {
	b.mu.Lock()
	b.pull = pull
	b.level = pull != halcore.PullDown
	b.mu.Unlock()
	return nil
}

func (b *SimButton) SetIRQ(edge halcore.Edge, handler func(halcore.Edge)) error {
	b.mu.Lock()
	b.edge, b.handler = edge, handler
	b.mu.Unlock()
	return nil
}

func (b *SimButton) ClearIRQ() error {
	b.mu.Lock()
	b.edge, b.handler = halcore.EdgeNone, nil
	b.mu.Unlock()
	return nil
}

// Press pulls the line low and then releases it, raising whichever edges
// are armed.
func (b *SimButton) Press() {
	b.transition(false)
	b.transition(true)
}

func (b *SimButton) transition(level bool) {
	b.mu.Lock()
	if b.level == level {
		b.mu.Unlock()
		return
	}
	b.level = level
	e, h := halcore.EdgeFalling, b.handler
	if level {
		e = halcore.EdgeRising
	}
	armed := b.edge == halcore.EdgeBoth || b.edge == e
	b.mu.Unlock()
	if armed && h != nil {
		h(e)
	}
}

// -----------------------------------------------------------------------------
// PWM
// -----------------------------------------------------------------------------

type SimPWM struct {
	top   atomic.Uint32
	level atomic.Uint32
}

func (p *SimPWM) Configure(_ uint64, top uint16) error {
	p.top.Store(uint32(top))
	return nil
}

func (p *SimPWM) Set(level uint16) {
	if t := p.top.Load(); uint32(level) > t {
		level = uint16(t)
	}
	p.level.Store(uint32(level))
}

func (p *SimPWM) Level() uint16 { return uint16(p.level.Load()) }

// -----------------------------------------------------------------------------
// Joystick
// -----------------------------------------------------------------------------

// SimJoystick traces a slow Lissajous figure across the full 12-bit range,
// unless a fixed position has been pinned with Hold.
type SimJoystick struct {
	mu     sync.Mutex
	step   uint32
	held   bool
	hx, hy uint16
}

func (j *SimJoystick) Hold(x, y uint16) {
	j.mu.Lock()
	j.held, j.hx, j.hy = true, x, y
	j.mu.Unlock()
}

func (j *SimJoystick) Sample(axis types.Axis) uint16 {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.held {
		if axis == types.AxisX {
			return j.hx
		}
		return j.hy
	}
	var phase float64
	if axis == types.AxisX {
		phase = float64(j.step) / 37
	} else {
		phase = float64(j.step)/23 + math.Pi/2
		j.step++ // one step per X/Y pair
	}
	return uint16(types.SampleCenter + math.Sin(phase)*(types.SampleMax-types.SampleCenter))
}

// -----------------------------------------------------------------------------
// Display
// -----------------------------------------------------------------------------

// SimDisplay is a 1-bit framebuffer with an explicit flush, like the SSD1306.
// Pixels become visible in Frame only after Display.
type SimDisplay struct {
	mu      sync.Mutex
	w, h    int16
	buf     []bool
	shown   []bool
	flushes uint32
}

func NewSimDisplay(w, h int16) *SimDisplay {
	n := int(w) * int(h)
	return &SimDisplay{w: w, h: h, buf: make([]bool, n), shown: make([]bool, n)}
}

func (d *SimDisplay) Size() (int16, int16) { return d.w, d.h }

func (d *SimDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.mu.Lock()
	d.buf[int(y)*int(d.w)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
	d.mu.Unlock()
}

func (d *SimDisplay) ClearBuffer() {
	d.mu.Lock()
	clear(d.buf)
	d.mu.Unlock()
}

func (d *SimDisplay) Display() error {
	d.mu.Lock()
	copy(d.shown, d.buf)
	d.flushes++
	d.mu.Unlock()
	return nil
}

// Lit reports whether (x, y) was on at the last flush.
func (d *SimDisplay) Lit(x, y int16) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return false
	}
	return d.shown[int(y)*int(d.w)+int(x)]
}

// Frame renders the last flushed frame as text, one row per line.
func (d *SimDisplay) Frame() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, 0, int(d.w+1)*int(d.h))
	for y := int16(0); y < d.h; y++ {
		for x := int16(0); x < d.w; x++ {
			if d.shown[int(y)*int(d.w)+int(x)] {
				out = append(out, '#')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func (d *SimDisplay) Flushes() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushes
}

// -----------------------------------------------------------------------------
// Bootloader
// -----------------------------------------------------------------------------

// SimBoot closes Entered when firmware update mode is requested; the host
// run treats that as the end of the process.
type SimBoot struct {
	once    sync.Once
	entered chan struct{}
}

func NewSimBoot() *SimBoot { return &SimBoot{entered: make(chan struct{})} }

func (b *SimBoot) EnterBootloader()         { b.once.Do(func() { close(b.entered) }) }
func (b *SimBoot) Entered() <-chan struct{} { return b.entered }

// -----------------------------------------------------------------------------
// Bring-up
// -----------------------------------------------------------------------------

// Open builds a simulated board matching cfg. The concrete Sim* values are
// reachable through the returned Resources via type assertion.
func Open(cfg types.Config) (*Resources, error) {
	r := &Resources{
		Axes:       &SimJoystick{},
		Canvas:     NewSimDisplay(int16(cfg.Display.Width), int16(cfg.Display.Height)),
		Boot:       NewSimBoot(),
		ButtonPull: halcore.PullUp,
		Buttons: map[types.ButtonID]halcore.IRQPin{
			types.ButtonJoystick: NewSimButton(cfg.Pins.Joystick),
			types.ButtonMode:     NewSimButton(cfg.Pins.Mode),
			types.ButtonBootsel:  NewSimButton(cfg.Pins.Bootsel),
		},
	}
	for i := range r.PWM {
		r.PWM[i] = &SimPWM{}
	}
	return r, nil
}
