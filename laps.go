package hitrack

// LapBoundary is the time range of one contiguous active interval of the
// session, delimited by pause sentinels in the location stream.
type LapBoundary struct {
	Start float64
	Stop  float64
}

// lapTracker accumulates lap boundaries while the log is parsed. It is a
// two-state machine: a zeroed current boundary means "between laps"; a
// boundary with a non-zero start is open and accumulating.
type lapTracker struct {
	current LapBoundary
	laps    []LapBoundary
}

// observe records one valid (non-pause) GPS timestamp. The first timestamp
// after a pause (or at session start) opens the lap; the stop time tracks the
// latest timestamp seen, which tolerates out-of-order location records.
func (lt *lapTracker) observe(t float64) {
	if lt.current.Start == 0 {
		lt.current.Start = t
	}
	if lt.current.Stop < t {
		lt.current.Stop = t
	}
}

// pause closes the current lap. The boundary is pushed even if it never saw a
// sample, matching the device's habit of writing a stop sentinel as the final
// location record.
func (lt *lapTracker) pause() {
	lt.laps = append(lt.laps, lt.current)
	lt.current = LapBoundary{}
}

// finish returns all boundaries, closing the open lap if the session ended
// without an explicit pause record.
func (lt *lapTracker) finish() []LapBoundary {
	if lt.current.Start != 0 {
		lt.laps = append(lt.laps, lt.current)
		lt.current = LapBoundary{}
	}
	return lt.laps
}
