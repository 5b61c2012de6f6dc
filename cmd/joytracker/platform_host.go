//go:build !rp2040

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"joytracker/services/hal"
	"joytracker/services/hal/provider"
	"joytracker/services/tracker"
	"joytracker/types"
	"joytracker/x/logx"
)

const bootDelay = 0

var (
	flagBoard  = flag.String("board", "bitdoglab", "embedded board config to load")
	flagScript = flag.Duration("press-every", 2*time.Second, "interval between simulated button presses (0 disables)")
	flagFrame  = flag.Bool("frame", false, "print the last frame when the simulation ends")
)

func boardName() string {
	flag.Parse()
	return *flagBoard
}

func halt() { os.Exit(1) }

// simulate plays a fixed button script against the simulated board and ends
// the run when the firmware-update button is accepted.
func simulate(ctx context.Context, cancel context.CancelFunc, b *hal.Board, t *tracker.Tracker) {
	log := logx.New("sim")
	boot, _ := b.Res.Boot.(*provider.SimBoot)
	disp, _ := b.Res.Canvas.(*provider.SimDisplay)

	go func() {
		if boot == nil {
			return
		}
		select {
		case <-ctx.Done():
		case <-boot.Entered():
			log.Log("firmware update mode requested, stopping")
			if disp != nil && *flagFrame {
				os.Stdout.WriteString(disp.Frame())
			}
			cancel()
		}
	}()

	if *flagScript <= 0 {
		return
	}
	script := []types.ButtonID{
		types.ButtonJoystick, // thick border, green on
		types.ButtonMode,     // freeze red/blue
		types.ButtonMode,     // release
		types.ButtonJoystick, // thin border, green off
		types.ButtonBootsel,  // end
	}
	go func() {
		tk := time.NewTicker(*flagScript)
		defer tk.Stop()
		for _, id := range script {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
			}
			btn, ok := b.Res.Buttons[id].(*provider.SimButton)
			if !ok {
				continue
			}
			log.Log("press", "button", id, "red", b.LEDs.Duty(types.ChannelRed), "green", b.LEDs.Duty(types.ChannelGreen), "blue", b.LEDs.Duty(types.ChannelBlue))
			btn.Press()
		}
	}()
}
