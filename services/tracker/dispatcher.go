package tracker

import (
	"sync/atomic"
	"time"

	"joytracker/services/hal/halcore"
	"joytracker/types"
)

// Clock returns monotonic time since an arbitrary origin.
type Clock func() time.Duration

// SinceStart is the default Clock.
func SinceStart() Clock {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

// DispatchConfig holds the dispatcher's fixed parameters.
type DispatchConfig struct {
	Debounce time.Duration
	// Shared uses one debounce clock for all buttons, so a press on one
	// button also blocks the others for the window.
	Shared bool
	// PressEdge is the edge that counts as a press; EdgeBoth accepts any.
	PressEdge halcore.Edge
	// GreenDuty is applied to the green channel while the border is thick.
	GreenDuty uint16
	Now       Clock
}

// DispatchStats counts what happened to delivered edges.
type DispatchStats struct {
	Accepted  uint32
	Debounced uint32
	Ignored   uint32 // unknown button or non-press edge
}

type action uint8

const (
	actIgnore action = iota
	actFirmwareUpdate
	actToggleOverride
	actToggleBorder
)

// Dispatcher turns debounced button presses into mode transitions. HandleEdge
// runs in interrupt context: it never blocks, allocates or logs.
type Dispatcher struct {
	st     *State
	leds   halcore.LEDOutputs
	screen *Presenter
	boot   halcore.Bootloader
	cfg    DispatchConfig

	// Nanoseconds of the last accepted edge per button; -1 means never.
	// Slot 0 (ButtonUnknown) serves as the shared clock.
	last [types.NumButtons]atomic.Int64

	accepted, debounced, ignored atomic.Uint32
}

func NewDispatcher(st *State, leds halcore.LEDOutputs, screen *Presenter, boot halcore.Bootloader, cfg DispatchConfig) *Dispatcher {
	if cfg.Now == nil {
		cfg.Now = SinceStart()
	}
	if cfg.PressEdge == halcore.EdgeNone {
		cfg.PressEdge = halcore.EdgeFalling
	}
	d := &Dispatcher{st: st, leds: leds, screen: screen, boot: boot, cfg: cfg}
	for i := range d.last {
		d.last[i].Store(-1)
	}
	return d
}

func classify(id types.ButtonID) action {
	switch id {
	case types.ButtonBootsel:
		return actFirmwareUpdate
	case types.ButtonMode:
		return actToggleOverride
	case types.ButtonJoystick:
		return actToggleBorder
	default:
		return actIgnore
	}
}

// HandleEdge is the IRQ entry point for every monitored button.
func (d *Dispatcher) HandleEdge(id types.ButtonID, edge halcore.Edge) {
	act := classify(id)
	if act == actIgnore {
		d.ignored.Add(1)
		return
	}
	if d.cfg.PressEdge != halcore.EdgeBoth && edge != d.cfg.PressEdge {
		d.ignored.Add(1)
		return
	}
	if !d.admit(id) {
		d.debounced.Add(1)
		return
	}
	d.accepted.Add(1)

	switch act {
	case actFirmwareUpdate:
		d.boot.EnterBootloader()
	case actToggleOverride:
		// Outputs reach rest before the flag flips.
		d.leds.SetDuty(types.ChannelRed, 0)
		d.leds.SetDuty(types.ChannelBlue, 0)
		d.st.toggleOverride()
	case actToggleBorder:
		d.screen.Clear()
		style := d.st.toggleBorder()
		d.screen.DrawBorder(style)
		if style == types.BorderThick {
			d.leds.SetDuty(types.ChannelGreen, d.cfg.GreenDuty)
		} else {
			d.leds.SetDuty(types.ChannelGreen, 0)
		}
	}
}

// admit applies the debounce window and records the edge when accepted.
func (d *Dispatcher) admit(id types.ButtonID) bool {
	slot := &d.last[id]
	if d.cfg.Shared {
		slot = &d.last[types.ButtonUnknown]
	}
	now := int64(d.cfg.Now())
	prev := slot.Load()
	if prev >= 0 && now-prev < int64(d.cfg.Debounce) {
		return false
	}
	return slot.CompareAndSwap(prev, now)
}

func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{
		Accepted:  d.accepted.Load(),
		Debounced: d.debounced.Load(),
		Ignored:   d.ignored.Load(),
	}
}
