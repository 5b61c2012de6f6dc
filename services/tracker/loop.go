package tracker

import (
	"context"
	"time"

	"joytracker/services/hal/halcore"
	"joytracker/types"
	"joytracker/x/logx"
)

// Loop is the fixed-cadence control task: sample, map, present, drive LEDs.
type Loop struct {
	st     *State
	axes   halcore.AxisSampler
	leds   halcore.LEDOutputs
	screen *Presenter
	geo    Geometry
	tick   time.Duration
	log    logx.Logger

	seen  Mode
	ticks uint32
}

func NewLoop(st *State, axes halcore.AxisSampler, leds halcore.LEDOutputs, screen *Presenter, geo Geometry, tick time.Duration) *Loop {
	return &Loop{
		st:     st,
		axes:   axes,
		leds:   leds,
		screen: screen,
		geo:    geo,
		tick:   tick,
		log:    logx.New("loop"),
		seen:   st.Snapshot(),
	}
}

// Run steps once immediately and then on every tick until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	t := time.NewTicker(l.tick)
	defer t.Stop()

	l.Step()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Step()
		}
	}
}

// Step performs one tick.
func (l *Loop) Step() {
	l.ticks++
	x := l.axes.Sample(types.AxisX)
	y := l.axes.Sample(types.AxisY)

	m := l.st.Snapshot()
	l.noteMode(m)

	cx, cy := l.geo.X(x, m.Border), l.geo.Y(y, m.Border)
	l.screen.Draw(cx, cy, m.Border)
	if l.st.borderChangedSince(m) {
		// The dispatcher reframed while we were drawing; our border and the
		// cursor range may both be stale.
		style := l.st.Border()
		cx, cy = l.geo.X(x, style), l.geo.Y(y, style)
		l.screen.Reframe(style)
		l.screen.Draw(cx, cy, style)
	}
	if err := l.screen.Flush(); err != nil {
		l.log.Log("flush failed", "err", err)
	}

	if m.Override {
		return
	}
	l.leds.SetDuty(types.ChannelRed, Intensity(x))
	l.leds.SetDuty(types.ChannelBlue, Intensity(y))
	if l.st.overrideChangedSince(m) && l.st.Override() {
		// Override landed between the snapshot and our writes: restore rest.
		l.leds.SetDuty(types.ChannelRed, 0)
		l.leds.SetDuty(types.ChannelBlue, 0)
	}
}

// Ticks is the number of completed steps.
func (l *Loop) Ticks() uint32 { return l.ticks }

func (l *Loop) noteMode(m Mode) {
	if m.Border == l.seen.Border && m.Override == l.seen.Override {
		return
	}
	l.log.Log("mode changed", "border", m.Border, "green", m.GreenOn, "override", m.Override)
	l.seen = m
}
