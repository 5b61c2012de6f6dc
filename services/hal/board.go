// services/hal/board.go
package hal

import (
	"joytracker/services/hal/gpioirq"
	"joytracker/services/hal/halcore"
	"joytracker/services/hal/provider"
	"joytracker/types"
	"joytracker/x/logx"
)

// Board is the configured hardware the tracker runs on.
type Board struct {
	Axes   halcore.AxisSampler
	LEDs   *LEDBank
	Canvas halcore.Canvas
	Boot   halcore.Bootloader

	// Res exposes the platform resources (simulated peripherals on host).
	Res *provider.Resources

	watcher *gpioirq.Watcher
	cancels []func()
	log     logx.Logger
}

// Open brings up the platform and configures the LED PWM channels.
// Buttons stay disarmed until ArmButtons.
func Open(cfg types.Config) (*Board, error) {
	res, err := provider.Open(cfg)
	if err != nil {
		return nil, err
	}
	if res.LogSink != nil {
		logx.SetOutput(res.LogSink)
	}
	leds := NewLEDBank(res.PWM)
	if err := leds.Configure(cfg.LED.FreqHz, cfg.LED.Top); err != nil {
		return nil, err
	}
	b := &Board{
		Axes:   res.Axes,
		LEDs:   leds,
		Canvas: res.Canvas,
		Boot:   res.Boot,
		Res:    res,
		log:    logx.New("hal"),
	}
	b.log.Log("board ready", "display_w", cfg.Display.Width, "display_h", cfg.Display.Height, "pwm_top", cfg.LED.Top)
	return b, nil
}

// ArmButtons routes every button's press edge to sink. Call it last: from
// here on sink runs asynchronously.
func (b *Board) ArmButtons(sink gpioirq.Sink) (*gpioirq.Watcher, error) {
	w := gpioirq.New(sink)
	for _, id := range []types.ButtonID{types.ButtonJoystick, types.ButtonMode, types.ButtonBootsel} {
		pin, ok := b.Res.Buttons[id]
		if !ok {
			continue
		}
		edge := pressEdge(b.Res.ButtonPull)
		cancel, err := w.RegisterButton(id, pin, b.Res.ButtonPull, edge)
		if err != nil {
			b.Disarm()
			return nil, err
		}
		b.cancels = append(b.cancels, cancel)
		b.log.Log("button armed", "id", id, "pin", pin.Number(), "edge", halcore.EdgeToString(edge))
	}
	b.watcher = w
	return w, nil
}

// Disarm removes every button interrupt registered by ArmButtons and logs how
// many interrupts were taken while armed.
func (b *Board) Disarm() {
	for _, c := range b.cancels {
		c()
	}
	b.cancels = nil
	if b.watcher != nil {
		b.log.Log("buttons disarmed", "isr_calls", b.watcher.ISRCalls())
		b.watcher = nil
	}
}

// pressEdge is the edge a press produces: buttons pulled up short to ground.
func pressEdge(p halcore.Pull) halcore.Edge {
	if p == halcore.PullDown {
		return halcore.EdgeRising
	}
	return halcore.EdgeFalling
}
