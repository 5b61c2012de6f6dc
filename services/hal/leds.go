// services/hal/leds.go
package hal

import (
	"joytracker/errcode"
	"joytracker/services/hal/halcore"
	"joytracker/types"
)

// LEDBank fans RGB duty writes out to one PWM channel per colour.
// SetDuty is safe from interrupt context.
type LEDBank struct {
	ch [types.NumChannels]halcore.PWMChannel
}

var _ halcore.LEDOutputs = (*LEDBank)(nil)

func NewLEDBank(ch [types.NumChannels]halcore.PWMChannel) *LEDBank {
	return &LEDBank{ch: ch}
}

// Channel returns the PWM output for c, or InvalidChannel.
func (b *LEDBank) Channel(c types.Channel) (halcore.PWMChannel, error) {
	if int(c) >= len(b.ch) || b.ch[c] == nil {
		return nil, errcode.InvalidChannel
	}
	return b.ch[c], nil
}

// SetDuty drives c; unknown channels are dropped.
func (b *LEDBank) SetDuty(c types.Channel, duty uint16) {
	if p, err := b.Channel(c); err == nil {
		p.Set(duty)
	}
}

// Duty reads back the logical level of c (0 for unknown channels).
func (b *LEDBank) Duty(c types.Channel) uint16 {
	if p, err := b.Channel(c); err == nil {
		return p.Level()
	}
	return 0
}

// Configure sets frequency and resolution on every channel and parks it at 0.
func (b *LEDBank) Configure(freqHz uint64, top uint16) error {
	for i, p := range b.ch {
		if p == nil {
			return &errcode.E{C: errcode.InvalidChannel, Op: "leds.configure", Msg: types.Channel(i).String()}
		}
		if err := p.Configure(freqHz, top); err != nil {
			return &errcode.E{C: errcode.Error, Op: "leds.configure", Msg: types.Channel(i).String(), Err: err}
		}
		p.Set(0)
	}
	return nil
}
