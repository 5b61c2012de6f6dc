// Package tracker is the joystick-to-cursor/LED core: an interrupt-driven
// button dispatcher and a periodic control loop sharing lock-free mode state.
package tracker

import (
	"context"
	"time"

	"joytracker/errcode"
	"joytracker/services/hal/halcore"
	"joytracker/types"
	"joytracker/x/logx"
)

// Hardware bundles the collaborators the core drives.
type Hardware struct {
	Axes   halcore.AxisSampler
	LEDs   halcore.LEDOutputs
	Canvas halcore.Canvas
	Boot   halcore.Bootloader
}

// Tracker wires state, dispatcher, presenter and loop together.
type Tracker struct {
	State      *State
	Presenter  *Presenter
	Dispatcher *Dispatcher
	Loop       *Loop

	hw  Hardware
	log logx.Logger
}

// GeometryOf extracts the drawing geometry from a config.
func GeometryOf(cfg types.Config) Geometry {
	return Geometry{
		Width:       cfg.Display.Width,
		Height:      cfg.Display.Height,
		Cursor:      cfg.Display.Cursor,
		ThinMargin:  cfg.Display.ThinMargin,
		ThickMargin: cfg.Display.ThickMargin,
	}
}

// New builds a tracker. now may be nil to use wall-clock monotonic time.
func New(cfg types.Config, hw Hardware, now Clock) (*Tracker, error) {
	if hw.Axes == nil || hw.LEDs == nil || hw.Canvas == nil || hw.Boot == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "tracker.new", "missing hardware collaborator")
	}
	geo := GeometryOf(cfg)
	st := &State{}
	pres := NewPresenter(hw.Canvas, geo)
	disp := NewDispatcher(st, hw.LEDs, pres, hw.Boot, DispatchConfig{
		Debounce:  cfg.Buttons.Debounce(),
		Shared:    cfg.Buttons.Shared,
		PressEdge: halcore.EdgeFalling,
		GreenDuty: cfg.LED.GreenDuty,
		Now:       now,
	})
	return &Tracker{
		State:      st,
		Presenter:  pres,
		Dispatcher: disp,
		Loop:       NewLoop(st, hw.Axes, hw.LEDs, pres, geo, cfg.Tick()),
		hw:         hw,
		log:        logx.New("tracker"),
	}, nil
}

// Start puts the outputs in their initial state: thin border, green off,
// red/blue at rest. Call before enabling button interrupts.
func (t *Tracker) Start() error {
	t.hw.LEDs.SetDuty(types.ChannelRed, 0)
	t.hw.LEDs.SetDuty(types.ChannelGreen, 0)
	t.hw.LEDs.SetDuty(types.ChannelBlue, 0)
	t.Presenter.Reframe(t.State.Border())
	return t.Presenter.Flush()
}

// Run blocks in the control loop until ctx is done.
func (t *Tracker) Run(ctx context.Context) {
	t.log.Log("control loop started", "tick", t.Loop.tick)
	t.Loop.Run(ctx)
	s := t.Dispatcher.Stats()
	t.log.Log("control loop stopped", "ticks", t.Loop.Ticks(), "accepted", s.Accepted, "debounced", s.Debounced, "ignored", s.Ignored)
}

// StatsEvery logs dispatcher counters at the given period until ctx is done.
func (t *Tracker) StatsEvery(ctx context.Context, period time.Duration) {
	tk := time.NewTicker(period)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			s := t.Dispatcher.Stats()
			t.log.Log("buttons", "accepted", s.Accepted, "debounced", s.Debounced, "ignored", s.Ignored)
		}
	}
}
