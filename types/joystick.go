package types

import "joytracker/errcode"

// SampleMax is the largest value a 12-bit axis sample can take.
const SampleMax = 4095

// SampleCenter is the nominal rest position of an axis.
const SampleCenter = 2048

// Axis identifies one joystick axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "?"
	}
}

// ButtonID is the logical identity of a monitored button.
type ButtonID uint8

const (
	ButtonUnknown  ButtonID = iota
	ButtonBootsel           // firmware-update entry (BitDogLab button B)
	ButtonMode              // LED override toggle (BitDogLab button A)
	ButtonJoystick          // joystick push switch, border toggle
)

// NumButtons sizes per-button tables; ButtonUnknown occupies slot 0.
const NumButtons = 4

func (b ButtonID) String() string {
	switch b {
	case ButtonBootsel:
		return "bootsel"
	case ButtonMode:
		return "mode"
	case ButtonJoystick:
		return "joystick"
	default:
		return "unknown"
	}
}

// Channel is one colour channel of the RGB LED.
type Channel uint8

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// NumChannels sizes per-channel tables.
const NumChannels = 3

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	default:
		return "?"
	}
}

// BorderStyle is the two-state display frame, mirrored by the green LED.
type BorderStyle uint8

const (
	BorderThin BorderStyle = iota
	BorderThick
)

func (s BorderStyle) String() string {
	if s == BorderThick {
		return "thick"
	}
	return "thin"
}

// ADCChannelOf maps an ADC-capable GPIO to its RP2040 ADC input.
// Only GPIO 26..29 are valid; anything else is InvalidChannel.
func ADCChannelOf(pin int) (uint8, error) {
	switch pin {
	case 26:
		return 0, nil
	case 27:
		return 1, nil
	case 28:
		return 2, nil
	case 29:
		return 3, nil
	default:
		return 0, errcode.InvalidChannel
	}
}
