// services/hal/provider/provider.go
package provider

import (
	"io"

	"joytracker/services/hal/halcore"
	"joytracker/types"
)

// Resources is everything a platform hands to the HAL after bring-up.
// Pins and channels are configured but idle: PWM channels still need
// Configure, IRQ pins still need SetIRQ.
type Resources struct {
	Axes    halcore.AxisSampler
	PWM     [types.NumChannels]halcore.PWMChannel
	Canvas  halcore.Canvas
	Boot    halcore.Bootloader
	Buttons map[types.ButtonID]halcore.IRQPin

	// ButtonPull is the pull applied to every button input.
	ButtonPull halcore.Pull
	// LogSink, when non-nil, should receive log output.
	LogSink io.Writer
}
