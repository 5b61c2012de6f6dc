package tracker

import (
	"testing"
	"time"

	"joytracker/services/hal/halcore"
	"joytracker/types"
)

func press(d *Dispatcher, id types.ButtonID) { d.HandleEdge(id, halcore.EdgeFalling) }

func TestDebounceSameButton(t *testing.T) {
	r := newRig(false)

	press(r.disp, types.ButtonMode)
	r.clk.Advance(50 * time.Millisecond)
	press(r.disp, types.ButtonMode) // chatter inside the window
	if !r.st.Override() {
		t.Fatal("first press should enable override")
	}
	if s := r.disp.Stats(); s.Accepted != 1 || s.Debounced != 1 {
		t.Fatalf("stats after chatter: %+v", s)
	}

	r.clk.Advance(250 * time.Millisecond)
	press(r.disp, types.ButtonMode)
	if r.st.Override() {
		t.Fatal("second press beyond the window should disable override")
	}
	if s := r.disp.Stats(); s.Accepted != 2 {
		t.Fatalf("stats after second press: %+v", s)
	}
}

func TestDebounceWindowBoundaryAccepts(t *testing.T) {
	r := newRig(false)
	press(r.disp, types.ButtonMode)
	r.clk.Advance(200 * time.Millisecond)
	press(r.disp, types.ButtonMode)
	if s := r.disp.Stats(); s.Accepted != 2 {
		t.Fatalf("edge exactly one window later must be accepted: %+v", s)
	}
}

func TestDebouncePerButtonClocks(t *testing.T) {
	r := newRig(false)

	press(r.disp, types.ButtonMode)
	r.clk.Advance(10 * time.Millisecond)
	press(r.disp, types.ButtonJoystick)

	if !r.st.Override() || r.st.Border() != types.BorderThick {
		t.Fatalf("independent buttons must not debounce each other: override=%v border=%v", r.st.Override(), r.st.Border())
	}
}

func TestDebounceSharedClock(t *testing.T) {
	r := newRig(true)

	press(r.disp, types.ButtonMode)
	r.clk.Advance(10 * time.Millisecond)
	press(r.disp, types.ButtonJoystick)

	if r.st.Border() != types.BorderThin {
		t.Fatal("shared clock must swallow the second button inside the window")
	}
	if s := r.disp.Stats(); s.Accepted != 1 || s.Debounced != 1 {
		t.Fatalf("stats: %+v", s)
	}

	r.clk.Advance(200 * time.Millisecond)
	press(r.disp, types.ButtonJoystick)
	if r.st.Border() != types.BorderThick {
		t.Fatal("joystick press after the window should be accepted")
	}
}

func TestUnknownButtonIsNoOp(t *testing.T) {
	r := newRig(true)

	before := r.st.Snapshot()
	r.disp.HandleEdge(types.ButtonUnknown, halcore.EdgeFalling)
	r.disp.HandleEdge(types.ButtonID(200), halcore.EdgeFalling)

	if r.st.Snapshot() != before || r.leds.writes != 0 || r.canvas.clears != 0 || r.boot.entered != 0 {
		t.Fatal("unknown button changed state")
	}
	if s := r.disp.Stats(); s.Ignored != 2 || s.Accepted != 0 {
		t.Fatalf("stats: %+v", s)
	}

	// Must not have consumed the shared debounce window.
	press(r.disp, types.ButtonMode)
	if !r.st.Override() {
		t.Fatal("known press right after unknown edges was rejected")
	}
}

func TestReleaseEdgeIgnored(t *testing.T) {
	r := newRig(false)
	r.disp.HandleEdge(types.ButtonMode, halcore.EdgeRising)
	if r.st.Override() {
		t.Fatal("release edge toggled override")
	}
	press(r.disp, types.ButtonMode)
	if !r.st.Override() {
		t.Fatal("press after ignored release should be accepted")
	}
}

func TestModeButtonZeroesBeforeOverride(t *testing.T) {
	r := newRig(false)
	r.leds.duty[types.ChannelRed] = 900
	r.leds.duty[types.ChannelBlue] = 700

	var sawOverrideDuringZero bool
	r.leds.onSet = func(ch types.Channel, duty uint16) {
		if r.st.Override() {
			sawOverrideDuringZero = true
		}
	}
	press(r.disp, types.ButtonMode)

	if sawOverrideDuringZero {
		t.Fatal("override became visible before red/blue reached rest")
	}
	if !r.st.Override() {
		t.Fatal("override not set")
	}
	if r.leds.duty[types.ChannelRed] != 0 || r.leds.duty[types.ChannelBlue] != 0 {
		t.Fatalf("red/blue not at rest: %v", r.leds.duty)
	}
}

func TestJoystickButtonTogglesBorderAndGreen(t *testing.T) {
	r := newRig(false)
	r.canvas.px[40*testGeo.Width+40] = true // stray content to be cleared

	press(r.disp, types.ButtonJoystick)

	m := r.st.Snapshot()
	if m.Border != types.BorderThick || !m.GreenOn {
		t.Fatalf("after first press: %+v", m)
	}
	if r.leds.duty[types.ChannelGreen] != 1024 {
		t.Fatalf("green duty = %d", r.leds.duty[types.ChannelGreen])
	}
	if r.canvas.clears != 1 || r.canvas.at(40, 40) {
		t.Fatal("screen was not cleared")
	}
	for i := 0; i < testGeo.ThickMargin; i++ {
		if !r.canvas.at(64, i) || !r.canvas.at(i, 32) || !r.canvas.at(127-i, 32) || !r.canvas.at(64, 63-i) {
			t.Fatalf("thick border row %d missing", i)
		}
	}
	if r.canvas.at(64, testGeo.ThickMargin) {
		t.Fatal("border drawn too thick")
	}

	r.clk.Advance(time.Second)
	press(r.disp, types.ButtonJoystick)

	m = r.st.Snapshot()
	if m.Border != types.BorderThin || m.GreenOn {
		t.Fatalf("after second press: %+v", m)
	}
	if r.leds.duty[types.ChannelGreen] != 0 {
		t.Fatalf("green duty = %d", r.leds.duty[types.ChannelGreen])
	}
	if r.canvas.clears != 2 || !r.canvas.at(64, 0) || r.canvas.at(64, 1) {
		t.Fatal("thin border not redrawn on a clear screen")
	}
}

func TestBootselEntersBootloader(t *testing.T) {
	r := newRig(false)
	press(r.disp, types.ButtonBootsel)
	if r.boot.entered != 1 {
		t.Fatalf("bootloader entered %d times", r.boot.entered)
	}
	if r.leds.writes != 0 || r.canvas.clears != 0 {
		t.Fatal("bootsel must not touch other outputs")
	}
}
