package tracker

import (
	"sync/atomic"

	"joytracker/types"
)

// State is the mode shared between the button dispatcher (sole writer, runs
// in interrupt context) and the control loop (reader).
//
// Each mode is a toggle counter: the low bit is the current value and the
// whole word is a generation the loop uses to spot changes that land in the
// middle of a tick. Border style and the green mirror are two projections of
// the same word, so no reader can see them disagree.
type State struct {
	border   atomic.Uint32 // odd: thick border, green on
	override atomic.Uint32 // odd: red/blue frozen
}

// Mode is one consistent read of State.
type Mode struct {
	Border   types.BorderStyle
	GreenOn  bool
	Override bool

	borderGen   uint32
	overrideGen uint32
}

func modeOf(b, o uint32) Mode {
	m := Mode{borderGen: b, overrideGen: o}
	if b&1 == 1 {
		m.Border = types.BorderThick
		m.GreenOn = true
	}
	m.Override = o&1 == 1
	return m
}

// Snapshot reads both modes.
func (s *State) Snapshot() Mode {
	return modeOf(s.border.Load(), s.override.Load())
}

func (s *State) Border() types.BorderStyle {
	return modeOf(s.border.Load(), 0).Border
}

func (s *State) Override() bool {
	return s.override.Load()&1 == 1
}

func (s *State) toggleBorder() types.BorderStyle {
	return modeOf(s.border.Add(1), 0).Border
}

func (s *State) toggleOverride() bool {
	return s.override.Add(1)&1 == 1
}

func (s *State) borderChangedSince(m Mode) bool   { return s.border.Load() != m.borderGen }
func (s *State) overrideChangedSince(m Mode) bool { return s.override.Load() != m.overrideGen }
