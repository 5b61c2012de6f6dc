//go:build rp2040

package main

import (
	"context"
	"time"

	"joytracker/services/hal"
	"joytracker/services/tracker"
)

const bootDelay = 2 * time.Second

func boardName() string { return "bitdoglab" }

// On hardware the buttons are real; nothing to drive.
func simulate(context.Context, context.CancelFunc, *hal.Board, *tracker.Tracker) {}

// halt keeps the MCU parked; the watchdog is not armed.
func halt() {}
