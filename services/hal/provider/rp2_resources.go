//go:build rp2040

package provider

import (
	"machine"
	"sync/atomic"

	"joytracker/errcode"
	"joytracker/services/hal/halcore"
	"joytracker/types"
	"joytracker/x/mathx"
	"joytracker/x/timex"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"
)

// Ensure the provider satisfies the contracts at compile time.
var (
	_ halcore.IRQPin      = (*rp2GPIO)(nil)
	_ halcore.PWMChannel  = (*rp2PWM)(nil)
	_ halcore.AxisSampler = (*rp2Axes)(nil)
	_ halcore.Canvas      = (*ssd1306.Device)(nil)
	_ halcore.Bootloader  = rp2Boot{}
)

// -----------------------------------------------------------------------------
// GPIO handle (buttons)
// -----------------------------------------------------------------------------

type rp2GPIO struct {
	p machine.Pin
	n int
}

func (r *rp2GPIO) Number() int { return r.n }
func (r *rp2GPIO) Get() bool   { return r.p.Get() }

func (r *rp2GPIO) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2GPIO) SetIRQ(edge halcore.Edge, handler func(halcore.Edge)) error {
	var change machine.PinChange
	switch edge {
	case halcore.EdgeRising:
		change = machine.PinRising
	case halcore.EdgeFalling:
		change = machine.PinFalling
	case halcore.EdgeBoth:
		change = machine.PinToggle
	default:
		return errcode.InvalidParams
	}
	// Runs in interrupt context: read the level, classify, forward.
	return r.p.SetInterrupt(change, func(p machine.Pin) {
		e := edge
		if e == halcore.EdgeBoth {
			if p.Get() {
				e = halcore.EdgeRising
			} else {
				e = halcore.EdgeFalling
			}
		}
		handler(e)
	})
}

func (r *rp2GPIO) ClearIRQ() error { return r.p.SetInterrupt(0, nil) }

// -----------------------------------------------------------------------------
// PWM (RP2040)
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// Per-slice frequency; two channels of one slice must agree. Only touched
// during bring-up, before interrupts are enabled.
var sliceFreq [8]uint64

// rp2PWM is one PWM channel. Set is called from both the control loop and
// the button ISR, so it only does an atomic store and a register write.
type rp2PWM struct {
	pin   machine.Pin
	ctrl  pwmCtrl
	chIdx uint8
	slice uint8

	reqTop uint16 // logical resolution (0..reqTop)
	hwTop  uint32 // controller.Top() after Configure

	level atomic.Uint32
}

func newRP2PWM(pin int) *rp2PWM {
	slice := uint8(pin>>1) & 7
	return &rp2PWM{pin: machine.Pin(pin), ctrl: pwmGroupBySlice(slice), slice: slice}
}

func (p *rp2PWM) Configure(freqHz uint64, top uint16) error {
	top = mathx.Max(top, 1)
	freqHz = mathx.Max(freqHz, 1)

	switch sliceFreq[p.slice] {
	case 0:
		if err := p.ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(freqHz)}); err != nil {
			return err
		}
		sliceFreq[p.slice] = freqHz
	case freqHz:
	default:
		return errcode.Conflict
	}

	ch, err := p.ctrl.Channel(p.pin)
	if err != nil {
		return err
	}
	p.chIdx = ch
	p.reqTop = top
	p.hwTop = p.ctrl.Top()
	p.Set(0)
	return nil
}

func (p *rp2PWM) Set(level uint16) {
	if p.hwTop == 0 || p.reqTop == 0 {
		return
	}
	level = mathx.Min(level, p.reqTop)
	// Scale from logical [0..reqTop] to hardware [0..hwTop].
	p.ctrl.Set(p.chIdx, mathx.ScaleU16(level, p.reqTop, p.hwTop))
	p.level.Store(uint32(level))
}

func (p *rp2PWM) Level() uint16 { return uint16(p.level.Load()) }

// -----------------------------------------------------------------------------
// ADC (joystick axes)
// -----------------------------------------------------------------------------

type rp2Axes struct {
	x, y machine.ADC
}

// Sample returns the 12-bit conversion; machine.ADC left-aligns to 16 bits.
func (a *rp2Axes) Sample(axis types.Axis) uint16 {
	if axis == types.AxisX {
		return a.x.Get() >> 4
	}
	return a.y.Get() >> 4
}

func newAxes(xPin, yPin int) (*rp2Axes, error) {
	if _, err := types.ADCChannelOf(xPin); err != nil {
		return nil, &errcode.E{C: errcode.InvalidChannel, Op: "provider.adc", Msg: "axis x", Err: err}
	}
	if _, err := types.ADCChannelOf(yPin); err != nil {
		return nil, &errcode.E{C: errcode.InvalidChannel, Op: "provider.adc", Msg: "axis y", Err: err}
	}
	machine.InitADC()
	a := &rp2Axes{x: machine.ADC{Pin: machine.Pin(xPin)}, y: machine.ADC{Pin: machine.Pin(yPin)}}
	a.x.Configure(machine.ADCConfig{})
	a.y.Configure(machine.ADCConfig{})
	return a, nil
}

// -----------------------------------------------------------------------------
// Display (SSD1306 over I²C)
// -----------------------------------------------------------------------------

func newDisplay(d types.DisplayPlan) (*ssd1306.Device, error) {
	var hw *machine.I2C
	switch d.I2C {
	case "i2c0":
		hw = machine.I2C0
	case "i2c1":
		hw = machine.I2C1
	default:
		return nil, errcode.Wrap(errcode.InvalidConfig, "provider.display", "unknown bus "+d.I2C)
	}
	sda := machine.Pin(d.SDA)
	scl := machine.Pin(d.SCL)
	if err := hw.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: d.Hz}); err != nil {
		return nil, err
	}
	dev := ssd1306.NewI2C(hw)
	dev.Configure(ssd1306.Config{
		Address: d.Address,
		Width:   int16(d.Width),
		Height:  int16(d.Height),
	})
	dev.ClearDisplay()
	return dev, nil
}

// -----------------------------------------------------------------------------
// Bootloader
// -----------------------------------------------------------------------------

type rp2Boot struct{}

// EnterBootloader reboots into BOOTSEL (USB mass storage). It does not return.
func (rp2Boot) EnterBootloader() { machine.EnterBootloader() }

// -----------------------------------------------------------------------------
// Log UART
// -----------------------------------------------------------------------------

func newLogUART(l types.LogPlan) (*uartx.UART, error) {
	var hw *uartx.UART
	switch l.UART {
	case "":
		return nil, nil
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errcode.Wrap(errcode.InvalidConfig, "provider.uart", "unknown uart "+l.UART)
	}
	// Defaults inside uartx apply if zero.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: l.Baud,
		TX:       machine.Pin(l.TX),
		RX:       machine.Pin(l.RX),
	}); err != nil {
		return nil, err
	}
	return hw, nil
}

// -----------------------------------------------------------------------------
// Bring-up
// -----------------------------------------------------------------------------

// Open brings up the BitDogLab peripherals described by cfg.
func Open(cfg types.Config) (*Resources, error) {
	axes, err := newAxes(cfg.Pins.AxisX, cfg.Pins.AxisY)
	if err != nil {
		return nil, err
	}
	disp, err := newDisplay(cfg.Display)
	if err != nil {
		return nil, err
	}
	r := &Resources{
		Axes:       axes,
		Canvas:     disp,
		Boot:       rp2Boot{},
		ButtonPull: halcore.PullUp,
		Buttons: map[types.ButtonID]halcore.IRQPin{
			types.ButtonJoystick: &rp2GPIO{p: machine.Pin(cfg.Pins.Joystick), n: cfg.Pins.Joystick},
			types.ButtonMode:     &rp2GPIO{p: machine.Pin(cfg.Pins.Mode), n: cfg.Pins.Mode},
			types.ButtonBootsel:  &rp2GPIO{p: machine.Pin(cfg.Pins.Bootsel), n: cfg.Pins.Bootsel},
		},
	}
	r.PWM[types.ChannelRed] = newRP2PWM(cfg.Pins.Red)
	r.PWM[types.ChannelGreen] = newRP2PWM(cfg.Pins.Green)
	r.PWM[types.ChannelBlue] = newRP2PWM(cfg.Pins.Blue)

	u, err := newLogUART(cfg.Log)
	if err != nil {
		return nil, err
	}
	if u != nil {
		r.LogSink = u
	}
	return r, nil
}
