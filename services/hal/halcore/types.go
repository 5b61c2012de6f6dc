// services/hal/halcore/types.go
package halcore

import (
	"image/color"

	"joytracker/types"
)

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with interrupts.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func(edge Edge)) error
	ClearIRQ() error
}

func EdgeToString(e Edge) string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// ---- Analog input ----

// AxisSampler returns a fresh 12-bit sample (0..4095) for an axis.
// Implementations must not block for more than a small fraction of a tick.
type AxisSampler interface {
	Sample(axis types.Axis) uint16
}

// ---- LED outputs ----

// PWMChannel drives one output with a logical duty in 0..Top.
type PWMChannel interface {
	Configure(freqHz uint64, top uint16) error
	Set(level uint16)
	Level() uint16
}

// LEDOutputs sets the duty of one RGB channel. Safe to call from interrupt
// context: it must not allocate or block.
type LEDOutputs interface {
	SetDuty(ch types.Channel, duty uint16)
}

// ---- Display ----

// Canvas is the pixel surface the presenter draws on. It is the
// tinygo.org/x/drivers Displayer contract plus a buffer clear, which
// *ssd1306.Device satisfies as-is.
type Canvas interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	ClearBuffer()
}

// ---- Firmware update ----

// Bootloader reboots into the mass-storage firmware update mode. On
// hardware EnterBootloader does not return.
type Bootloader interface {
	EnterBootloader()
}
