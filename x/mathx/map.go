package mathx

// ScaleFloor maps x in [0,inMax] onto [0,outMax] as floor(x*outMax/inMax),
// using 64-bit intermediates. x is clamped to [0,inMax]; a non-positive
// inMax or outMax yields 0.
func ScaleFloor(x, inMax, outMax int) int {
	if inMax <= 0 || outMax <= 0 {
		return 0
	}
	x = Clamp(x, 0, inMax)
	return int(int64(x) * int64(outMax) / int64(inMax))
}

// ScaleU16 rescales a level in [0,from] to [0,to] with 32-bit intermediates.
// Levels above from saturate at to.
func ScaleU16(level, from uint16, to uint32) uint32 {
	if from == 0 {
		return 0
	}
	level = Min(level, from)
	return uint32(level) * to / uint32(from)
}
