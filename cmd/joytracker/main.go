package main

import (
	"context"
	"time"

	"joytracker/services/config"
	"joytracker/services/hal"
	"joytracker/services/tracker"
	"joytracker/types"
	"joytracker/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	log := logx.New("main")

	cfg, err := config.Load(boardName())
	if err != nil {
		fatal(log, "config", err)
	}

	log.Log("opening board …")
	b, err := hal.Open(cfg)
	if err != nil {
		fatal(log, "hal", err)
	}

	t, err := tracker.New(cfg, tracker.Hardware{
		Axes:   b.Axes,
		LEDs:   b.LEDs,
		Canvas: b.Canvas,
		Boot:   b.Boot,
	}, nil)
	if err != nil {
		fatal(log, "tracker", err)
	}
	if err := t.Start(); err != nil {
		log.Log("first frame failed", "err", err)
	}

	// Buttons go live only once the outputs are in their initial state.
	w, err := b.ArmButtons(t.Dispatcher)
	if err != nil {
		fatal(log, "buttons", err)
	}
	for _, id := range []types.ButtonID{types.ButtonJoystick, types.ButtonMode, types.ButtonBootsel} {
		if _, ok := w.Registered(id); !ok {
			log.Log("button not wired", "id", id)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go t.StatsEvery(ctx, 10*time.Second)
	simulate(ctx, cancel, b, t)

	log.Log("running", "tick", cfg.Tick(), "debounce", cfg.Buttons.Debounce(), "shared_debounce", cfg.Buttons.Shared)
	t.Run(ctx)
	b.Disarm()
	log.Log("stopped", "isr_calls", w.ISRCalls())
}

func fatal(log logx.Logger, stage string, err error) {
	log.Log("startup failed", "stage", stage, "err", err)
	for {
		time.Sleep(time.Second)
		halt()
	}
}
